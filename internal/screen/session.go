package screen

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"example.com/notes-screen/internal/notes"
	"example.com/notes-screen/internal/observable"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionClosed   = errors.New("session closed")
	ErrNoteNotFound    = errors.New("note not found")
)

// Session is one open notes screen. It owns its store; the store goes away
// with the session.
//
// mu plays the part of the UI thread: every store call and every
// subscription change happens while holding it, so observers are notified
// synchronously on the goroutine that made the change.
type Session struct {
	ID string

	mu      sync.Mutex
	store   *notes.Store
	form    Form
	list    []notes.Note
	visible bool
	view    *observable.Value[View]
	subs    []notes.Subscription
	closed  bool
	done    chan struct{}
	log     zerolog.Logger
}

func NewSession(store *notes.Store, log zerolog.Logger) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		store: store,
		view:  observable.New(View{}),
		done:  make(chan struct{}),
	}
	s.log = log.With().Str("session", s.ID).Logger()

	s.subs = append(s.subs,
		store.SubscribeNotes(func(l []notes.Note) {
			s.list = l
			s.refresh()
		}),
		store.SubscribeFormVisible(func(v bool) {
			s.visible = v
			s.refresh()
		}),
	)
	return s
}

func (s *Session) refresh() {
	s.view.Set(Render(s.list, s.visible, s.form))
}

// Do runs fn against the store on the session's event thread.
func (s *Session) Do(fn func(*notes.Store)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	fn(s.store)
	return nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Get()
}

// SetForm replaces the draft and re-renders.
func (s *Session) SetForm(f Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.form = f
	s.refresh()
	return nil
}

// SubmitForm adds the current draft as a note.
func (s *Session) SubmitForm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.form.Submit(s.store); err != nil {
		return err
	}
	s.log.Info().Str("title", s.form.Title).Msg("note submitted")
	return nil
}

// Tap returns the toast for the note at index i.
func (s *Session) Tap(i int) (Toast, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Toast{}, ErrSessionClosed
	}
	if i < 0 || i >= len(s.list) {
		return Toast{}, ErrNoteNotFound
	}
	return Toast{Message: s.list[i].Content}, nil
}

// Watch calls fn with the current view and again after every change, until
// cancel is called or the session closes. fn runs with the session locked
// and must not call back into the session.
func (s *Session) Watch(fn func(View)) (cancel func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	id := s.view.Subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.view.Unsubscribe(id)
	}, nil
}

// Done is closed when the session is torn down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close drops the store subscriptions. Later calls return ErrSessionClosed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		s.store.Unsubscribe(sub)
	}
	s.subs = nil
	close(s.done)
}
