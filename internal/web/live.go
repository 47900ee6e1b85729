package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wolfman30/mediconnect/internal/doctors"
)

const (
	liveReadLimit    = 4096
	liveIdleTimeout  = 2 * time.Minute
	liveWriteTimeout = 5 * time.Second
	resultsBlock     = "doctor-results"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// LiveResult is pushed to the browser after every keystroke or select change.
type LiveResult struct {
	Query   doctors.Query `json:"query"`
	Count   int           `json:"count"`
	Empty   bool          `json:"empty"`
	Summary string        `json:"summary"`
	HTML    string        `json:"html"`
	Error   string        `json:"error,omitempty"`
}

// LiveSearch upgrades GET /doctors/live to a websocket. Each JSON query frame
// ({"search": ..., "specialization": ...}) is answered with the re-rendered
// results block.
func (h *Handler) LiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("live search upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(liveReadLimit)

	base := h.page(r, PageDoctors, "Our Doctors", nil, nil)
	for {
		_ = conn.SetReadDeadline(time.Now().Add(liveIdleTimeout))
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("live search connection closed", "error", err)
			}
			return
		}
		var q doctors.Query
		if err := json.Unmarshal(frame, &q); err != nil {
			if !h.writeLive(conn, LiveResult{Error: "invalid query"}) {
				return
			}
			continue
		}

		res := h.doctors.Search(r.Context(), q, "live")
		msg := LiveResult{
			Query:   res.Query,
			Count:   res.Count(),
			Empty:   res.Empty(),
			Summary: res.Summary(),
		}
		data := base
		data.Data = h.doctorsView(res)
		var buf bytes.Buffer
		if err := h.renderer.Fragment(&buf, PageDoctors, resultsBlock, data); err != nil {
			h.logger.Error("failed to render live results", "error", err)
			msg.Error = "render failed"
		} else {
			msg.HTML = buf.String()
		}

		if !h.writeLive(conn, msg) {
			return
		}
	}
}

func (h *Handler) writeLive(conn *websocket.Conn, msg LiveResult) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Debug("live search write failed", "error", err)
		return false
	}
	return true
}
