package debuglog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnected
	StateError
)

// Batch is the message sent to the debug server.
type Batch struct {
	Logs []Entry `json:"logs"`
}

// WebSocketTransport sends batches as JSON text messages. It dials lazily
// on the first send and redials after a failed write.
type WebSocketTransport struct {
	url         string
	dialTimeout time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	state     ConnState
	lastError error
}

func NewWebSocketTransport(url string) *WebSocketTransport {
	return &WebSocketTransport{url: url, dialTimeout: 2 * time.Second}
}

func (t *WebSocketTransport) State() (ConnState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.lastError
}

func (t *WebSocketTransport) Send(ctx context.Context, entries []Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		dialCtx, cancel := context.WithTimeout(ctx, t.dialTimeout)
		conn, _, err := websocket.Dial(dialCtx, t.url, nil)
		cancel()
		if err != nil {
			t.setError(fmt.Errorf("failed to dial %s: %w", t.url, err))
			return t.lastError
		}
		t.conn = conn
		t.state = StateConnected
		t.lastError = nil
	}

	if err := wsjson.Write(ctx, t.conn, Batch{Logs: entries}); err != nil {
		_ = t.conn.Close(websocket.StatusInternalError, "write failed")
		t.conn = nil
		t.setError(fmt.Errorf("failed to send logs: %w", err))
		return t.lastError
	}
	return nil
}

func (t *WebSocketTransport) setError(err error) {
	t.state = StateError
	t.lastError = err
}

func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close(websocket.StatusNormalClosure, "")
	t.conn = nil
	t.state = StateDisconnected
	return err
}
