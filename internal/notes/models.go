package notes

import "errors"

var (
	ErrTitleRequired   = errors.New("title required")
	ErrContentRequired = errors.New("content required")
)

// Note is a title and content pair. Two notes with the same fields are equal.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate reports the first empty field. Store does not call it; callers
// that accept user input gate on it before Add.
func (n Note) Validate() error {
	if n.Title == "" {
		return ErrTitleRequired
	}
	if n.Content == "" {
		return ErrContentRequired
	}
	return nil
}

// SeedNotes returns the demo list a fresh screen starts with.
func SeedNotes() []Note {
	return []Note{
		{Title: "Hi1", Content: "Hello"},
		{Title: "Hi2", Content: "Hello"},
		{Title: "Hi3", Content: "Hello"},
	}
}
