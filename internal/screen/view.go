package screen

import "example.com/notes-screen/internal/notes"

const (
	ActionShowForm = "show_form"
	ActionHideForm = "hide_form"
)

// View is everything a client needs to draw the screen.
type View struct {
	FormVisible bool       `json:"form_visible"`
	FabAction   string     `json:"fab_action"`
	Form        *FormView  `json:"form,omitempty"`
	Notes       []NoteView `json:"notes"`
}

type FormView struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TitleError       bool   `json:"title_error"`
	DescriptionError bool   `json:"description_error"`
	SubmitEnabled    bool   `json:"submit_enabled"`
}

type NoteView struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Toast is the short message shown when a note is tapped.
type Toast struct {
	Message string `json:"message"`
}

// Render builds the view for one snapshot. The form is only present while
// visible.
func Render(list []notes.Note, formVisible bool, form Form) View {
	v := View{
		FormVisible: formVisible,
		FabAction:   ActionShowForm,
		Notes:       make([]NoteView, 0, len(list)),
	}
	if formVisible {
		v.FabAction = ActionHideForm
		v.Form = &FormView{
			Title:            form.Title,
			Description:      form.Description,
			TitleError:       form.TitleError(),
			DescriptionError: form.DescriptionError(),
			SubmitEnabled:    form.Valid(),
		}
	}
	for i, n := range list {
		v.Notes = append(v.Notes, NoteView{Index: i, Title: n.Title, Content: n.Content})
	}
	return v
}
