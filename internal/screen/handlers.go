package screen

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"example.com/notes-screen/internal/notes"
)

type Handlers struct {
	reg          *Registry
	log          zerolog.Logger
	upgrader     websocket.Upgrader
	writeTimeout time.Duration
}

type HandlerOption func(*Handlers)

// WithWriteTimeout bounds each websocket frame write.
func WithWriteTimeout(d time.Duration) HandlerOption {
	return func(h *Handlers) { h.writeTimeout = d }
}

func NewHandlers(reg *Registry, log zerolog.Logger, opts ...HandlerOption) *Handlers {
	h := &Handlers{
		reg:          reg,
		log:          log,
		writeTimeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type replaceRequest struct {
	Notes []notes.Note `json:"notes"`
}

type openResponse struct {
	ID   string `json:"id"`
	View View   `json:"view"`
}

func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(h.log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("duration", d).
			Msg("request")
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.open)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.view)
			r.Delete("/", h.close)
			r.Get("/ws", h.stream)

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", h.addNote)
				r.Put("/", h.replaceNotes)
				r.Delete("/", h.clearNotes)
				r.Post("/remove", h.removeNote)
				r.Post("/{index}/tap", h.tap)
			})

			r.Route("/form", func(r chi.Router) {
				r.Put("/", h.updateForm)
				r.Post("/submit", h.submitForm)
				r.Post("/show", h.mutate(func(s *notes.Store) { s.ShowForm() }))
				r.Post("/hide", h.mutate(func(s *notes.Store) { s.HideForm() }))
				r.Post("/toggle", h.mutate(func(s *notes.Store) { s.ToggleFormVisibility() }))
			})
		})
	})

	return r
}

func (h *Handlers) open(w http.ResponseWriter, r *http.Request) {
	s := h.reg.Create()
	writeJSON(w, http.StatusCreated, openResponse{ID: s.ID, View: s.View()})
}

func (h *Handlers) view(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handlers) close(w http.ResponseWriter, r *http.Request) {
	if err := h.reg.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) addNote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	n := notes.Note{Title: req.Title, Content: req.Content}
	if n.Validate() != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and content required"})
		return
	}

	if err := s.Do(func(st *notes.Store) { st.Add(n) }); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *Handlers) replaceNotes(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req replaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.apply(w, s, func(st *notes.Store) { st.ReplaceAll(req.Notes) })
}

func (h *Handlers) clearNotes(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.apply(w, s, func(st *notes.Store) { st.Clear() })
}

func (h *Handlers) removeNote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.apply(w, s, func(st *notes.Store) {
		st.Remove(notes.Note{Title: req.Title, Content: req.Content})
	})
}

func (h *Handlers) tap(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid index"})
		return
	}
	toast, err := s.Tap(i)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toast)
}

func (h *Handlers) updateForm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var f Form
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := s.SetForm(f); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handlers) submitForm(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.SubmitForm(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *Handlers) mutate(fn func(*notes.Store)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := h.session(w, r)
		if !ok {
			return
		}
		h.apply(w, s, fn)
	}
}

func (h *Handlers) apply(w http.ResponseWriter, s *Session, fn func(*notes.Store)) {
	if err := s.Do(fn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, err := h.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionClosed):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": ErrSessionNotFound.Error()})
	case errors.Is(err, ErrNoteNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, notes.ErrTitleRequired), errors.Is(err, notes.ErrContentRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and content required"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
