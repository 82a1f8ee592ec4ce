package screen

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// stream pushes the session view over a websocket: the current view first,
// then one frame per change. A client that falls behind skips to the latest
// view.
func (h *Handlers) stream(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	frames := make(chan View, 1)
	cancel, err := s.Watch(func(v View) {
		// only the session goroutine sends, so after a drain the send fits
		select {
		case frames <- v:
		default:
			select {
			case <-frames:
			default:
			}
			frames <- v
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	// watch before upgrading so changes made during the handshake are kept
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("session", s.ID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log := h.log.With().Str("session", s.ID).Logger()
	log.Debug().Msg("view stream opened")
	for {
		select {
		case v := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteJSON(v); err != nil {
				log.Warn().Err(err).Msg("view stream write failed")
				return
			}
		case <-gone:
			log.Debug().Msg("view stream closed by client")
			return
		case <-s.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrSessionClosed.Error()))
			return
		}
	}
}
