package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"ditelemetry/internal/models"
)

// Feed broadcasts every processed snapshot to connected WebSocket
// observers. Observers are read-only; inbound frames are drained solely to
// detect the close.
type Feed struct {
	mu           sync.RWMutex
	clients      map[*client]struct{}
	logger       *zap.Logger
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	writeTimeout time.Duration
}

// NewFeed builds the feed.
func NewFeed(logger *zap.Logger) *Feed {
	return &Feed{
		clients:      make(map[*client]struct{}),
		logger:       logger,
		pingInterval: 30 * time.Second,
		writeTimeout: 10 * time.Second,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWS upgrades the request and registers the observer.
func (f *Feed) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		ws:   conn,
		send: make(chan []byte, 16),
		feed: f,
	}
	f.add(c)
	f.logger.Info("feed observer connected", zap.String("remote", conn.RemoteAddr().String()))

	go c.writePump()
	go c.readPump()
}

// Publish fans the snapshot out to every observer. Slow observers drop
// frames rather than stall the pipeline.
func (f *Feed) Publish(snap *models.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		f.logger.Warn("failed to encode snapshot for feed", zap.Error(err))
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.clients {
		select {
		case c.send <- data:
		default:
			f.logger.Warn("dropping feed frame, observer buffer full")
		}
	}
}

// Run keeps observer connections alive with periodic pings until ctx ends.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			f.closeAll()
			return
		case <-ticker.C:
			f.mu.RLock()
			for c := range f.clients {
				_ = c.ping()
			}
			f.mu.RUnlock()
		}
	}
}

func (f *Feed) add(c *client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[c] = struct{}{}
}

func (f *Feed) remove(c *client) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.clients, c)
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		_ = c.ws.Close()
	}
	f.clients = make(map[*client]struct{})
}
