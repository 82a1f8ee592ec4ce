package notes

import (
	"slices"

	"github.com/rs/zerolog"

	"example.com/notes-screen/internal/observable"
)

// Subscription is a handle returned by the Subscribe methods.
type Subscription struct {
	field string
	id    observable.Subscription
}

const (
	fieldNotes = "notes"
	fieldForm  = "form_visible"
)

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the source of truth for one screen: the ordered note list and the
// form-visible flag. Every mutation publishes a full snapshot of the field it
// touched.
//
// Store is not safe for concurrent use; the owning screen serializes calls.
type Store struct {
	notes       *observable.Value[[]Note]
	formVisible *observable.Value[bool]
	log         zerolog.Logger
}

// NewStore returns a store initialized with seed and the form hidden.
func NewStore(seed []Note, opts ...Option) *Store {
	s := &Store{
		notes:       observable.New[[]Note]([]Note{}),
		formVisible: observable.New(false),
		log:         zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.Initialize(seed)
	return s
}

func NewSeededStore(opts ...Option) *Store {
	return NewStore(SeedNotes(), opts...)
}

// Initialize sets the list to seed. It runs once from NewStore; to empty the
// list use Clear.
func (s *Store) Initialize(seed []Note) {
	s.publish("initialize", clone(seed))
}

// ReplaceAll overwrites the list without validation.
func (s *Store) ReplaceAll(notes []Note) {
	s.publish("replace_all", clone(notes))
}

// Clear empties the list. It does not restore the seed.
func (s *Store) Clear() {
	s.publish("clear", []Note{})
}

// Add appends n. The store does not validate n.
func (s *Store) Add(n Note) {
	cur := s.notes.Get()
	next := make([]Note, len(cur), len(cur)+1)
	copy(next, cur)
	s.publish("add", append(next, n))
}

// Remove drops the first note equal to n. When nothing matches the list is
// republished unchanged.
func (s *Store) Remove(n Note) {
	next := clone(s.notes.Get())
	if i := slices.Index(next, n); i >= 0 {
		next = slices.Delete(next, i, i+1)
	}
	s.publish("remove", next)
}

func (s *Store) ShowForm() {
	s.setForm("show_form", true)
}

func (s *Store) HideForm() {
	s.setForm("hide_form", false)
}

func (s *Store) ToggleFormVisibility() {
	s.setForm("toggle_form", !s.formVisible.Get())
}

// Notes returns a copy of the current list.
func (s *Store) Notes() []Note {
	return clone(s.notes.Get())
}

func (s *Store) FormVisible() bool {
	return s.formVisible.Get()
}

// SubscribeNotes calls fn with the current list and then with every new
// snapshot. Each call gets its own copy.
func (s *Store) SubscribeNotes(fn func([]Note)) Subscription {
	id := s.notes.Subscribe(func(v []Note) { fn(clone(v)) })
	return Subscription{field: fieldNotes, id: id}
}

// SubscribeFormVisible calls fn with the current flag and then on every
// change.
func (s *Store) SubscribeFormVisible(fn func(bool)) Subscription {
	return Subscription{field: fieldForm, id: s.formVisible.Subscribe(fn)}
}

// Unsubscribe reports whether sub was active.
func (s *Store) Unsubscribe(sub Subscription) bool {
	switch sub.field {
	case fieldNotes:
		return s.notes.Unsubscribe(sub.id)
	case fieldForm:
		return s.formVisible.Unsubscribe(sub.id)
	}
	return false
}

func (s *Store) publish(op string, next []Note) {
	s.notes.Set(next)
	s.log.Debug().Str("op", op).Int("notes", len(next)).Msg("notes published")
}

func (s *Store) setForm(op string, visible bool) {
	s.formVisible.Set(visible)
	s.log.Debug().Str("op", op).Bool("form_visible", visible).Msg("form visibility published")
}

func clone(in []Note) []Note {
	out := make([]Note, len(in))
	copy(out, in)
	return out
}
