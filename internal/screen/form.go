package screen

import "example.com/notes-screen/internal/notes"

// Form is the note-creation draft.
type Form struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (f Form) TitleError() bool       { return f.Title == "" }
func (f Form) DescriptionError() bool { return f.Description == "" }

// Valid reports whether both fields are filled in. Submit is disabled
// otherwise.
func (f Form) Valid() bool {
	return !f.TitleError() && !f.DescriptionError()
}

func (f Form) Note() notes.Note {
	return notes.Note{Title: f.Title, Content: f.Description}
}

// Submit adds the draft to s when it is valid. The draft itself is left
// as is.
func (f Form) Submit(s *notes.Store) error {
	n := f.Note()
	if err := n.Validate(); err != nil {
		return err
	}
	s.Add(n)
	return nil
}
