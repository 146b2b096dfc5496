package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/channel_helper"
	"github.com/Geraldleevs/MACD-MVP2-Backend-repo--sub000/models"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ProgressEvent is one frame on the frontend feed: either a per-pair
// progress tick during a recommendation sweep or the final result.
type ProgressEvent struct {
	Type      string                 `json:"type"` // "progress" or "result"
	Token     string                 `json:"token"`
	Timeframe string                 `json:"timeframe"`
	Done      int                    `json:"done,omitempty"`
	Total     int                    `json:"total,omitempty"`
	Result    *models.BacktestResult `json:"result,omitempty"`
}

// publishProgress never blocks a backtest worker: when the frontend is slow
// the oldest buffered event is dropped in favor of the newest.
func (s *Server) publishProgress(ev ProgressEvent) {
	channel_helper.WriteToChannelAndBufferLatest(s.progressFeed, ev)
}

// wsHandler streams recommendation progress to the frontend. Only one
// frontend connection is allowed at a time; this service is not designed for
// multiple concurrent users.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	s.frontendMutex.Lock()
	if s.frontendConnected {
		s.frontendMutex.Unlock()
		http.Error(w, "frontend already connected", http.StatusConflict)
		return
	}
	s.frontendConnected = true
	s.frontendMutex.Unlock()

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade error: %v", err)
		s.frontendMutex.Lock()
		s.frontendConnected = false
		s.frontendMutex.Unlock()
		return
	}
	defer func() {
		conn.Close()
		s.frontendMutex.Lock()
		s.frontendConnected = false
		s.frontendMutex.Unlock()
	}()

	done := make(chan struct{})

	// drain the client side; we only care about disconnects
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server shutdown"))
			return
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case ev := <-s.progressFeed:
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[WS] write error: %v", err)
				return
			}
		}
	}
}
