// Package debuglog forwards log lines to a local debug server in batches,
// falling back to local storage when the server cannot be reached.
package debuglog

import (
	"net"
	"strings"
	"time"
)

type Level string

const (
	LevelLog   Level = "log"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

type Config struct {
	// Enabled turns remote logging on. DefaultConfig only enables it for
	// local hosts.
	Enabled   bool
	ServerURL string

	BatchEnabled  bool
	BatchInterval time.Duration
	BatchMaxSize  int

	RetryEnabled  bool
	RetryAttempts int // retries after the first failed send
	RetryDelay    time.Duration

	Levels map[Level]bool

	// KeepOriginal keeps writing log output to stderr next to the remote copy.
	KeepOriginal         bool
	ShowConnectionStatus bool

	FallbackToStore bool
	StoreKey        string
	MaxStoredLogs   int
}

// DefaultConfig returns the settings for a game served from host.
func DefaultConfig(host string) Config {
	if host == "" {
		host = "localhost"
	}
	return Config{
		Enabled:       IsLocalHost(host),
		ServerURL:     "ws://" + net.JoinHostPort(host, "3001") + "/logs",
		BatchEnabled:  true,
		BatchInterval: 500 * time.Millisecond,
		BatchMaxSize:  50,
		RetryEnabled:  true,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
		Levels: map[Level]bool{
			LevelLog:   true,
			LevelInfo:  true,
			LevelWarn:  true,
			LevelError: true,
			LevelDebug: true,
		},
		KeepOriginal:         true,
		ShowConnectionStatus: true,
		FallbackToStore:      true,
		StoreKey:             "debugLogs",
		MaxStoredLogs:        100,
	}
}

// IsLocalHost reports whether host is a development machine: localhost,
// 127.0.0.1, empty, or on a 192.168.x.x network.
func IsLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	switch host {
	case "", "localhost", "127.0.0.1":
		return true
	}
	return strings.HasPrefix(host, "192.168.")
}

func (c Config) levelEnabled(l Level) bool {
	if c.Levels == nil {
		return true
	}
	return c.Levels[l]
}
