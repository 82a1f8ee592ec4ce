package screen

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (http.Handler, *Registry) {
	t.Helper()
	reg := NewRegistry(true, zerolog.Nop())
	t.Cleanup(reg.CloseAll)
	return NewHandlers(reg, zerolog.Nop()).Routes(), reg
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) View {
	t.Helper()
	var v View
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func openSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rr := do(t, h, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var resp openResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.NotEmpty(t, resp.ID)
	require.Len(t, resp.View.Notes, 3)
	return resp.ID
}

func titles(v View) []string {
	out := make([]string, 0, len(v.Notes))
	for _, n := range v.Notes {
		out = append(out, n.Title)
	}
	return out
}

func TestHandlers_Health(t *testing.T) {
	h, _ := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestHandlers_OpenViewAndClose(t *testing.T) {
	h, reg := newTestRouter(t)
	id := openSession(t, h)
	require.Equal(t, 1, reg.Len())

	rr := do(t, h, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"Hi1", "Hi2", "Hi3"}, titles(decodeView(t, rr)))

	rr = do(t, h, http.MethodDelete, "/sessions/"+id, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodDelete, "/sessions/"+id, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlers_AddNote(t *testing.T) {
	h, _ := newTestRouter(t)
	id := openSession(t, h)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"invalid json", "{", http.StatusBadRequest},
		{"empty title", `{"title":"","content":"x"}`, http.StatusBadRequest},
		{"empty content", `{"title":"x","content":""}`, http.StatusBadRequest},
		{"ok", `{"title":"t","content":"c"}`, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/sessions/"+id+"/notes", tt.body)
			require.Equal(t, tt.code, rr.Code)
		})
	}

	rr := do(t, h, http.MethodGet, "/sessions/"+id, "")
	require.Equal(t, []string{"Hi1", "Hi2", "Hi3", "t"}, titles(decodeView(t, rr)))

	rr = do(t, h, http.MethodPost, "/sessions/unknown/notes", `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlers_ReplaceRemoveClear(t *testing.T) {
	h, _ := newTestRouter(t)
	id := openSession(t, h)
	base := "/sessions/" + id + "/notes"

	rr := do(t, h, http.MethodPut, base, `{"notes":[{"title":"A","content":"a"},{"title":"B","content":"b"},{"title":"A","content":"a"}]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"A", "B", "A"}, titles(decodeView(t, rr)))

	rr = do(t, h, http.MethodPost, base+"/remove", `{"title":"A","content":"a"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"B", "A"}, titles(decodeView(t, rr)))

	// no match is not an error
	rr = do(t, h, http.MethodPost, base+"/remove", `{"title":"Z","content":"z"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"B", "A"}, titles(decodeView(t, rr)))

	rr = do(t, h, http.MethodPost, base+"/remove", "{")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	for i := 0; i < 2; i++ {
		rr = do(t, h, http.MethodDelete, base, "")
		require.Equal(t, http.StatusOK, rr.Code)
		require.Empty(t, decodeView(t, rr).Notes)
	}
}

func TestHandlers_Tap(t *testing.T) {
	h, _ := newTestRouter(t)
	id := openSession(t, h)

	rr := do(t, h, http.MethodPost, "/sessions/"+id+"/notes/0/tap", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var toast Toast
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&toast))
	require.Equal(t, "Hello", toast.Message)

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/notes/9/tap", "")
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodPost, "/sessions/"+id+"/notes/abc/tap", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlers_Form(t *testing.T) {
	h, _ := newTestRouter(t)
	id := openSession(t, h)
	base := "/sessions/" + id + "/form"

	rr := do(t, h, http.MethodPost, base+"/toggle", "")
	require.Equal(t, http.StatusOK, rr.Code)
	v := decodeView(t, rr)
	require.True(t, v.FormVisible)
	require.Equal(t, ActionHideForm, v.FabAction)

	rr = do(t, h, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPut, base, `{"title":"draft","description":"text"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	v = decodeView(t, rr)
	require.True(t, v.Form.SubmitEnabled)

	rr = do(t, h, http.MethodPost, base+"/submit", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, []string{"Hi1", "Hi2", "Hi3", "draft"}, titles(decodeView(t, rr)))

	rr = do(t, h, http.MethodPost, base+"/hide", "")
	require.False(t, decodeView(t, rr).FormVisible)

	rr = do(t, h, http.MethodPost, base+"/show", "")
	require.True(t, decodeView(t, rr).FormVisible)

	rr = do(t, h, http.MethodPut, base, "{")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlers_Stream(t *testing.T) {
	h, reg := newTestRouter(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s := reg.Create()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + s.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() View {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		var v View
		require.NoError(t, conn.ReadJSON(&v))
		return v
	}

	require.Equal(t, []string{"Hi1", "Hi2", "Hi3"}, titles(read()))

	rr := do(t, h, http.MethodDelete, "/sessions/"+s.ID+"/notes", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, read().Notes)

	rr = do(t, h, http.MethodPost, "/sessions/"+s.ID+"/notes", `{"title":"t","content":"c"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, []string{"t"}, titles(read()))

	require.NoError(t, reg.Delete(s.ID))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestHandlers_StreamUnknownSession(t *testing.T) {
	h, _ := newTestRouter(t)
	rr := do(t, h, http.MethodGet, "/sessions/nope/ws", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
