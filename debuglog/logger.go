package debuglog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrClosed is returned by Log and Write after Close.
var ErrClosed = errors.New("debuglog: logger closed")

// Entry is one forwarded log line.
type Entry struct {
	Level     Level  `json:"level"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Transport delivers a batch of entries to the debug server.
type Transport interface {
	Send(ctx context.Context, entries []Entry) error
	Close() error
}

// Store keeps entries that could not be delivered. *gdata.Manager satisfies it.
type Store interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Logger batches entries and sends them through a Transport. It is an
// io.Writer so it can be installed as the standard logger's output.
type Logger struct {
	cfg       Config
	transport Transport
	store     Store

	// status is never the standard logger: that one may write back into us.
	status *log.Logger

	mu        sync.Mutex
	pending   []Entry
	closed    bool
	connected bool

	flushCh chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	sendMu  sync.Mutex

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New returns a logger sending through t. With batching enabled a
// background goroutine flushes every BatchInterval until Close.
func New(cfg Config, t Transport, s Store) *Logger {
	l := newLogger(cfg, t, s)
	if cfg.Enabled && cfg.BatchEnabled {
		l.wg.Add(1)
		go l.run()
	}
	return l
}

func newLogger(cfg Config, t Transport, s Store) *Logger {
	if cfg.BatchMaxSize <= 0 {
		cfg.BatchMaxSize = 50
	}
	if cfg.BatchInterval <= 0 {
		cfg.BatchInterval = 500 * time.Millisecond
	}
	return &Logger{
		cfg:       cfg,
		transport: t,
		store:     s,
		status:    log.New(os.Stderr, "[debuglog] ", log.LstdFlags),
		pending:   make([]Entry, 0, cfg.BatchMaxSize),
		flushCh:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *Logger) run() {
	defer l.wg.Done()
	ticker := time.NewTicker(l.cfg.BatchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		case <-l.flushCh:
		}
		_ = l.Flush(context.Background())
	}
}

// Enabled reports whether entries are forwarded at all.
func (l *Logger) Enabled() bool { return l.cfg.Enabled }

// Log queues one entry. Disabled loggers and disabled levels drop it.
func (l *Logger) Log(level Level, msg string) error {
	if !l.cfg.Enabled || !l.cfg.levelEnabled(level) {
		return nil
	}
	e := Entry{Level: level, Message: msg, Timestamp: l.now().UnixMilli()}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if !l.cfg.BatchEnabled {
		l.mu.Unlock()
		return l.deliver(context.Background(), []Entry{e})
	}
	l.pending = append(l.pending, e)
	full := len(l.pending) >= l.cfg.BatchMaxSize
	l.mu.Unlock()

	if full {
		select {
		case l.flushCh <- struct{}{}:
		default:
		}
	}
	return nil
}

// Write splits p into lines and logs each one, taking the level from a
// "Warning:" or "Error:" marker in the line.
func (l *Logger) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte{'\n'}) {
		if len(line) == 0 {
			continue
		}
		s := string(line)
		if err := l.Log(levelOf(s), s); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func levelOf(line string) Level {
	switch {
	case strings.Contains(line, "Error:") || strings.Contains(line, "error:"):
		return LevelError
	case strings.Contains(line, "Warning:"):
		return LevelWarn
	case strings.Contains(line, "Debug:"):
		return LevelDebug
	}
	return LevelLog
}

// Pending returns the number of queued entries.
func (l *Logger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Flush sends queued entries in batches of at most BatchMaxSize.
func (l *Logger) Flush(ctx context.Context) error {
	l.mu.Lock()
	entries := l.pending
	l.pending = make([]Entry, 0, l.cfg.BatchMaxSize)
	l.mu.Unlock()

	var errs []error
	for len(entries) > 0 {
		n := min(len(entries), l.cfg.BatchMaxSize)
		if err := l.deliver(ctx, entries[:n]); err != nil {
			errs = append(errs, err)
		}
		entries = entries[n:]
	}
	return errors.Join(errs...)
}

// deliver sends with retries and stores the batch when every attempt fails.
func (l *Logger) deliver(ctx context.Context, batch []Entry) error {
	l.sendMu.Lock()
	defer l.sendMu.Unlock()

	err := l.sendWithRetry(ctx, batch)
	if err == nil {
		if !l.connected {
			l.connected = true
			l.statusf("connected to %s", l.cfg.ServerURL)
		}
		return nil
	}

	l.connected = false
	if l.cfg.FallbackToStore && l.store != nil {
		if serr := l.storeEntries(batch); serr != nil {
			return errors.Join(err, serr)
		}
		l.statusf("server unreachable, %d logs stored locally: %v", len(batch), err)
		return nil
	}
	l.statusf("server unreachable, %d logs dropped: %v", len(batch), err)
	return err
}

func (l *Logger) sendWithRetry(ctx context.Context, batch []Entry) error {
	if l.transport == nil {
		return errors.New("debuglog: no transport")
	}
	attempts := 1
	if l.cfg.RetryEnabled && l.cfg.RetryAttempts > 0 {
		attempts += l.cfg.RetryAttempts
	}
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			if serr := l.sleep(ctx, l.cfg.RetryDelay); serr != nil {
				return fmt.Errorf("debuglog: send: %w", serr)
			}
		}
		if err = l.transport.Send(ctx, batch); err == nil {
			return nil
		}
	}
	return fmt.Errorf("debuglog: send failed after %d attempts: %w", attempts, err)
}

func (l *Logger) storeEntries(batch []Entry) error {
	stored, err := l.Stored()
	if err != nil {
		stored = nil
	}
	stored = append(stored, batch...)
	if keep := l.cfg.MaxStoredLogs; keep > 0 && len(stored) > keep {
		stored = stored[len(stored)-keep:]
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("debuglog: encode stored logs: %w", err)
	}
	if err := l.store.SaveItem(l.cfg.StoreKey, data); err != nil {
		return fmt.Errorf("debuglog: store logs: %w", err)
	}
	return nil
}

// Stored returns the entries kept locally after failed sends, oldest first.
func (l *Logger) Stored() ([]Entry, error) {
	if l.store == nil {
		return nil, nil
	}
	data, err := l.store.LoadItem(l.cfg.StoreKey)
	if err != nil || len(data) == 0 {
		return nil, err
	}
	var out []Entry
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("debuglog: parse stored logs: %w", err)
	}
	return out, nil
}

// Close stops the background flusher, sends what is queued and closes the
// transport. Later calls to Log return ErrClosed.
func (l *Logger) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	close(l.done)
	l.wg.Wait()

	err := l.Flush(ctx)
	if l.transport != nil {
		err = errors.Join(err, l.transport.Close())
	}
	return err
}

func (l *Logger) statusf(format string, args ...any) {
	if l.cfg.ShowConnectionStatus {
		l.status.Printf(format, args...)
	}
}
