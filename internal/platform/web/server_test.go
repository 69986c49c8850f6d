package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/arcade-loop/internal/leaderboard"
)

// brokenStore fails every write.
type brokenStore struct {
	leaderboard.Store
}

func (brokenStore) Submit(context.Context, leaderboard.Entry) error { return errors.New("disk full") }
func (brokenStore) SaveName(context.Context, string) error          { return errors.New("disk full") }

// lateStore accepts one extra score right after the first Top read, as if
// another client had submitted it concurrently.
type lateStore struct {
	leaderboard.Store
	once sync.Once
	late leaderboard.Entry
}

func (s *lateStore) Top(ctx context.Context, game string, k int) ([]leaderboard.Entry, error) {
	top, err := s.Store.Top(ctx, game, k)
	s.once.Do(func() { _ = s.Store.Submit(ctx, s.late) })
	return top, err
}

func newTestServer(t *testing.T) (*httptest.Server, *leaderboard.FileStore) {
	t.Helper()
	store, err := leaderboard.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(store, nil).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func post(t *testing.T, url, body string) (int, reply) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var r reply
	json.NewDecoder(resp.Body).Decode(&r)
	return resp.StatusCode, r
}

func TestSaveName(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"ok", `{"name":"ann"}`, http.StatusOK},
		{"missing name", `{}`, http.StatusBadRequest},
		{"malformed", `{"name":`, http.StatusBadRequest},
		{"separator", `{"name":"a|b"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			status, r := post(t, srv.URL+"/api/save-name", tc.body)
			if status != tc.status {
				t.Errorf("status = %d, expected %d", status, tc.status)
			}
			if r.Success != (tc.status == http.StatusOK) {
				t.Errorf("success = %v with status %d", r.Success, status)
			}
			if !r.Success && r.Error == "" {
				t.Error("error reply without a message")
			}
		})
	}
}

func TestSaveScore(t *testing.T) {
	srv, store := newTestServer(t)

	status, r := post(t, srv.URL+"/api/save-score", `{"game":"snake","name":"ann","score":12}`)
	if status != http.StatusOK || !r.Success {
		t.Fatalf("status = %d, reply = %+v", status, r)
	}

	top, _ := store.Top(context.Background(), "snake", 5)
	if len(top) != 1 || top[0] != (leaderboard.Entry{Game: "snake", Name: "ann", Score: 12}) {
		t.Errorf("board = %v", top)
	}
	names, _ := os.ReadFile(filepath.Join(store.Dir(), leaderboard.NamesFile))
	if !strings.Contains(string(names), ": ann (Played snake)\n") {
		t.Errorf("names.txt = %q, expected the played note", names)
	}
}

func TestSaveScoreRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing score", `{"game":"snake","name":"ann"}`},
		{"missing game", `{"name":"ann","score":1}`},
		{"negative score", `{"game":"snake","name":"ann","score":-5}`},
		{"not json", `score=5`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			if status, _ := post(t, srv.URL+"/api/save-score", tc.body); status != http.StatusBadRequest {
				t.Errorf("status = %d, expected 400", status)
			}
		})
	}
}

func TestStorageFailure(t *testing.T) {
	srv := httptest.NewServer(New(brokenStore{}, nil).Handler())
	defer srv.Close()

	status, r := post(t, srv.URL+"/api/save-score", `{"game":"snake","name":"ann","score":1}`)
	if status != http.StatusInternalServerError || r.Success {
		t.Errorf("status = %d, reply = %+v, expected 500", status, r)
	}
}

func TestLeaderboard(t *testing.T) {
	srv, store := newTestServer(t)
	for i := 1; i <= 7; i++ {
		store.Submit(context.Background(), leaderboard.Entry{Game: "maze", Name: "p", Score: i * 10})
	}
	store.Submit(context.Background(), leaderboard.Entry{Game: "snake", Name: "q", Score: 999})

	resp, err := http.Get(srv.URL + "/api/leaderboard?game=maze")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var top []leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&top); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if len(top) != leaderboard.TopN || top[0].Score != 70 || top[4].Score != 30 {
		t.Errorf("leaderboard = %v, expected maze 70..30", top)
	}

	resp, err = http.Get(srv.URL + "/api/leaderboard")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status without game = %d, expected 400", resp.StatusCode)
	}
}

func TestPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/save-score", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, expected 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, expected *", got)
	}
}

func TestClientAgainstServer(t *testing.T) {
	srv, _ := newTestServer(t)
	c := leaderboard.NewClient(srv.URL, nil)
	ctx := context.Background()

	if err := c.Submit(ctx, leaderboard.Entry{Game: "runner", Name: "ann", Score: 4}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	top, err := c.Top(ctx, "runner", 5)
	if err != nil || len(top) != 1 || top[0].Score != 4 {
		t.Errorf("Top() = %v, %v", top, err)
	}
}

func TestLiveFeed(t *testing.T) {
	srv, _ := newTestServer(t)
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/leaderboard/live?game=snake"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var top []leaderboard.Entry
	if err := conn.ReadJSON(&top); err != nil {
		t.Fatalf("first snapshot error = %v", err)
	}
	if len(top) != 0 {
		t.Errorf("first snapshot = %v, expected empty", top)
	}

	post(t, srv.URL+"/api/save-score", `{"game":"maze","name":"bob","score":50}`)
	post(t, srv.URL+"/api/save-score", `{"game":"snake","name":"ann","score":8}`)

	if err := conn.ReadJSON(&top); err != nil {
		t.Fatalf("update error = %v", err)
	}
	if len(top) != 1 || top[0].Name != "ann" {
		t.Errorf("update = %v, expected ann's snake score only", top)
	}
}

func TestLiveFeedSnapshotAfterRegister(t *testing.T) {
	file, err := leaderboard.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := &lateStore{Store: file, late: leaderboard.Entry{Game: "snake", Name: "cy", Score: 12}}
	srv := httptest.NewServer(New(store, nil).Handler())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/leaderboard/live?game=snake"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var top []leaderboard.Entry
	if err := conn.ReadJSON(&top); err != nil {
		t.Fatalf("first snapshot error = %v", err)
	}
	if len(top) != 1 || top[0].Name != "cy" {
		t.Errorf("first snapshot = %v, expected the score accepted during connect", top)
	}
}
