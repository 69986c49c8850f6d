package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// The board is public and read-only over the socket.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// watcher is one live-feed connection. Writes go through mu because the
// ping loop and publishers write concurrently.
type watcher struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (w *watcher) write(messageType int, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return w.conn.WriteMessage(messageType, data)
}

// feed tracks live-feed watchers per game.
type feed struct {
	logger *log.Logger

	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
}

func newFeed(logger *log.Logger) *feed {
	return &feed{logger: logger, watchers: make(map[string]map[*watcher]struct{})}
}

func (f *feed) add(game string, w *watcher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watchers[game] == nil {
		f.watchers[game] = make(map[*watcher]struct{})
	}
	f.watchers[game][w] = struct{}{}
}

func (f *feed) remove(game string, w *watcher) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.watchers[game], w)
	if len(f.watchers[game]) == 0 {
		delete(f.watchers, game)
	}
}

func (f *feed) watching(game string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers[game]) > 0
}

// publish sends a top list to every watcher of game. A watcher that cannot
// take the write is closed; its read loop then unregisters it.
func (f *feed) publish(game string, top []leaderboard.Entry) {
	data, err := json.Marshal(top)
	if err != nil {
		return
	}
	f.mu.Lock()
	targets := make([]*watcher, 0, len(f.watchers[game]))
	for w := range f.watchers[game] {
		targets = append(targets, w)
	}
	f.mu.Unlock()

	for _, w := range targets {
		if err := w.write(websocket.TextMessage, data); err != nil {
			f.logger.Debug("live feed write failed", "game", game, "err", err)
			w.conn.Close()
		}
	}
}

func (f *feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ws := range f.watchers {
		for w := range ws {
			w.conn.Close()
		}
	}
}

// live upgrades to a websocket, sends the current top list for game and then
// a fresh one after every accepted score. Incoming messages are ignored.
func (s *Server) live(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		writeError(w, http.StatusBadRequest, "game is required")
		return
	}
	// Fail before upgrading while a plain HTTP error can still be sent.
	if _, err := s.store.Top(r.Context(), game, leaderboard.TopN); err != nil {
		s.storeError(w, "live", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Register before reading the snapshot so no accepted score falls
	// between the two.
	wt := &watcher{conn: conn}
	s.feed.add(game, wt)
	defer s.feed.remove(game, wt)

	top, err := s.store.Top(r.Context(), game, leaderboard.TopN)
	if err != nil {
		s.logger.Warn("live snapshot failed", "game", game, "err", err)
		return
	}
	data, _ := json.Marshal(top)
	if err := wt.write(websocket.TextMessage, data); err != nil {
		return
	}

	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := wt.write(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
