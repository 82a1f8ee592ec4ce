package screen

import (
	"sync"

	"github.com/rs/zerolog"

	"example.com/notes-screen/internal/notes"
)

// Registry keeps the open sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	seed     bool
	log      zerolog.Logger
}

// NewRegistry returns an empty registry. When seed is true new sessions
// start with the demo notes.
func NewRegistry(seed bool, log zerolog.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		seed:     seed,
		log:      log,
	}
}

func (r *Registry) Create() *Session {
	var initial []notes.Note
	if r.seed {
		initial = notes.SeedNotes()
	}
	store := notes.NewStore(initial, notes.WithLogger(r.log))
	s := NewSession(store, r.log)

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.Info().Str("session", s.ID).Int("notes", len(initial)).Msg("session opened")
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes the session and forgets it. Its notes are lost.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	r.log.Info().Str("session", id).Msg("session closed")
	return nil
}

// CloseAll tears down every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range all {
		s.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
