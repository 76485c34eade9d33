// handlers/live.go - Live leaderboard feed over WebSocket
package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	leaderboardPushPeriod = 10 * time.Second
	clientSendBuffer      = 8
)

type liveClient struct {
	conn *websocket.Conn
	send chan interface{}
	done chan struct{}
	once sync.Once
}

var (
	liveClients   = make(map[*liveClient]struct{})
	liveClientsMu sync.RWMutex
	livePusher    sync.Once
)

// LiveUpgrade gates the route so only WebSocket upgrade requests reach the
// connection handler.
func LiveUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// LiveLeaderboard streams leaderboard snapshots to connected clients. The
// first connection starts the shared push loop.
// GET /api/leaderboard/live
var LiveLeaderboard = websocket.New(func(conn *websocket.Conn) {
	livePusher.Do(startLeaderboardPusher)

	client := &liveClient{
		conn: conn,
		send: make(chan interface{}, clientSendBuffer),
		done: make(chan struct{}),
	}

	liveClientsMu.Lock()
	liveClients[client] = struct{}{}
	total := len(liveClients)
	liveClientsMu.Unlock()

	log.Printf("📡 Leaderboard viewer connected (%d total)", total)

	// Send the current board immediately so the client doesn't wait a full
	// push period for its first frame.
	if entries, err := leaderboardService.Leaderboard(); err == nil {
		client.enqueue(fiber.Map{"type": "leaderboard", "entries": entries})
	}

	go client.writeLoop()

	// Read loop keeps the connection alive and detects disconnects. Inbound
	// frames are ignored, the feed is one-way.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	liveClientsMu.Lock()
	delete(liveClients, client)
	remaining := len(liveClients)
	liveClientsMu.Unlock()

	client.close()
	log.Printf("🔌 Leaderboard viewer disconnected (%d remaining)", remaining)
})

func (c *liveClient) enqueue(msg interface{}) {
	select {
	case c.send <- msg:
	default:
		// Slow consumer, drop the frame. The next push carries a full
		// snapshot so nothing is permanently missed.
	}
}

func (c *liveClient) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *liveClient) writeLoop() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// pushLeaderboardNow broadcasts a fresh board outside the ticker cadence.
// Called after point-changing operations so viewers see scores move
// immediately.
func pushLeaderboardNow() {
	liveClientsMu.RLock()
	idle := len(liveClients) == 0
	liveClientsMu.RUnlock()
	if idle {
		return
	}

	go func() {
		entries, err := leaderboardService.Leaderboard()
		if err != nil {
			log.Printf("⚠️ Live leaderboard refresh failed: %v", err)
			return
		}
		msg := fiber.Map{"type": "leaderboard", "entries": entries}
		liveClientsMu.RLock()
		for client := range liveClients {
			client.enqueue(msg)
		}
		liveClientsMu.RUnlock()
	}()
}

func startLeaderboardPusher() {
	go func() {
		ticker := time.NewTicker(leaderboardPushPeriod)
		defer ticker.Stop()

		for range ticker.C {
			liveClientsMu.RLock()
			idle := len(liveClients) == 0
			liveClientsMu.RUnlock()
			if idle {
				continue
			}

			entries, err := leaderboardService.Leaderboard()
			if err != nil {
				log.Printf("⚠️ Live leaderboard refresh failed: %v", err)
				continue
			}

			msg := fiber.Map{"type": "leaderboard", "entries": entries}
			liveClientsMu.RLock()
			for client := range liveClients {
				client.enqueue(msg)
			}
			liveClientsMu.RUnlock()
		}
	}()
}
