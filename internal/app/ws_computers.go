package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/frudas24/convertible-couch/internal/config"
	"github.com/frudas24/convertible-couch/internal/fuzzing"
)

// streamRequest asks for count computers starting at seed; a nil profile uses the served one.
type streamRequest struct {
	Seed    uint64          `json:"seed"`
	Count   int             `json:"count,omitempty"`
	Profile *config.Profile `json:"profile,omitempty"`
}

// streamResponse carries one computer or the reason it could not be built.
type streamResponse struct {
	Seed     uint64                  `json:"seed"`
	Computer *fuzzing.FuzzedComputer `json:"computer,omitempty"`
	Error    string                  `json:"error,omitempty"`
}

// handleComputerStream upgrades the request and answers stream requests until the client disconnects.
func (a *App) handleComputerStream(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	logger := a.logger.With("remote", r.RemoteAddr)
	logger.Info("stream: connected")

	for {
		var req streamRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("stream: read failed", "error", err)
			}
			logger.Info("stream: disconnected")
			return
		}
		if err := a.serveStreamRequest(conn, req); err != nil {
			logger.Warn("stream: write failed", "error", err)
			return
		}
	}
}

// serveStreamRequest writes one response per requested seed.
func (a *App) serveStreamRequest(conn *websocket.Conn, req streamRequest) error {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	if count > maxStreamCount {
		return a.writeResponse(conn, streamResponse{Seed: req.Seed, Error: errTooMany.Error()})
	}
	profile := a.profile
	if req.Profile != nil {
		profile = *req.Profile
	}
	for i := 0; i < count; i++ {
		seed := req.Seed + uint64(i)
		resp := streamResponse{Seed: seed}
		c, err := a.Build(seed, profile)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Computer = &c
		}
		if err := a.writeResponse(conn, resp); err != nil {
			return err
		}
	}
	return nil
}

// errTooMany rejects oversized stream requests.
var errTooMany = errors.New("count exceeds the per-request limit")

// writeResponse writes resp with a deadline.
func (a *App) writeResponse(conn *websocket.Conn, resp streamResponse) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(resp)
}
