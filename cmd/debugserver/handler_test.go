package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/automoto/lodis-galaga/debuglog"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestReceiveLogsOverWebSocket(t *testing.T) {
	recent := NewRecent(10)
	var out syncBuffer
	mux := http.NewServeMux()
	mux.HandleFunc("GET /logs", ReceiveLogs(recent, log.New(&out, "", 0)))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tr := debuglog.NewWebSocketTransport("ws" + strings.TrimPrefix(srv.URL, "http") + "/logs")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := tr.Send(ctx, []debuglog.Entry{
		{Level: debuglog.LevelWarn, Message: "no sprite for boss-normal", Timestamp: 1},
		{Level: debuglog.LevelLog, Message: "wave 3", Timestamp: 2},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for len(recent.List()) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("server did not receive the batch")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strings.Contains(out.String(), "WARN no sprite for boss-normal") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestSendFailsWithoutServer(t *testing.T) {
	tr := debuglog.NewWebSocketTransport("ws://127.0.0.1:1/logs")
	err := tr.Send(context.Background(), []debuglog.Entry{{Message: "x"}})
	if err == nil {
		t.Fatalf("expected dial error")
	}
	if state, _ := tr.State(); state != debuglog.StateError {
		t.Fatalf("state = %v, want error", state)
	}
}

func TestRecentKeepsNewest(t *testing.T) {
	r := NewRecent(3)
	for i := 0; i < 5; i++ {
		r.Add(debuglog.Entry{Timestamp: int64(i)})
	}
	got := r.List()
	if len(got) != 3 || got[0].Timestamp != 2 || got[2].Timestamp != 4 {
		t.Fatalf("recent = %+v", got)
	}
}

func TestListRecentAndHealth(t *testing.T) {
	r := NewRecent(5)
	r.Add(debuglog.Entry{Level: debuglog.LevelInfo, Message: "hi"})

	rec := httptest.NewRecorder()
	ListRecent(r)(rec, httptest.NewRequest(http.MethodGet, "/recent", nil))
	var got []debuglog.Entry
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Message != "hi" {
		t.Fatalf("recent = %+v", got)
	}

	rec = httptest.NewRecorder()
	Health()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health = %q", rec.Body.String())
	}
}
