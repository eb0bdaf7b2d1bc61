package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/automoto/lodis-galaga/debuglog"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const maxMessageSize = 1 << 20 // 1 MB

// ReceiveLogs upgrades to a websocket and prints every entry of every batch
// the client sends until it disconnects.
func ReceiveLogs(recent *Recent, out *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// Clients are served from arbitrary local dev ports.
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Printf("[debugserver] accept error: %v", err)
			return
		}
		defer conn.CloseNow()
		conn.SetReadLimit(maxMessageSize)

		log.Printf("[debugserver] client connected from %s", r.RemoteAddr)
		ctx := r.Context()
		for {
			var batch debuglog.Batch
			if err := wsjson.Read(ctx, conn, &batch); err != nil {
				if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
					log.Printf("[debugserver] client %s disconnected", r.RemoteAddr)
				} else if !errors.Is(err, ctx.Err()) {
					log.Printf("[debugserver] read error from %s: %v", r.RemoteAddr, err)
				}
				return
			}
			for _, e := range batch.Logs {
				out.Print(formatEntry(e))
			}
			recent.Add(batch.Logs...)
		}
	}
}

func formatEntry(e debuglog.Entry) string {
	ts := time.UnixMilli(e.Timestamp).Format("15:04:05.000")
	return ts + " " + strings.ToUpper(string(e.Level)) + " " + e.Message
}

func ListRecent(recent *Recent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(recent.List()); err != nil {
			log.Printf("[debugserver] recent encode error: %v", err)
		}
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
