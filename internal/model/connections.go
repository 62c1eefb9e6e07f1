package model

import (
	"encoding/json"
	"sync"

	"github.com/benbeisheim/chess-ai-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// RegisterConnection adds an observer and sends it the current state. A
// newer connection for the same player replaces the older one.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	payload, err := json.Marshal(g.state())
	if err != nil {
		return err
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if old, exists := g.connections.connections[playerID]; exists && old != conn {
		log.Infof("game %s: replacing connection for player %s", g.ID, playerID)
		closeConn(old, "Replaced by a new connection")
	}
	g.connections.connections[playerID] = conn
	log.Debugf("game %s: registered connection for player %s", g.ID, playerID)

	return conn.WriteJSON(ws.Message{Type: ws.MessageTypeGameState, Payload: payload})
}

// UnregisterConnection removes conn unless it has already been replaced.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Debugf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// SendError reports err to one player's connection only.
func (g *Game) SendError(playerID string, err error) {
	payload, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		log.Debugf("game %s: failed to encode error for player %s: %v", g.ID, playerID, merr)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	if conn, exists := g.connections.connections[playerID]; exists {
		if werr := conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload}); werr != nil {
			log.Warnf("game %s: failed to send error to player %s: %v", g.ID, playerID, werr)
		}
	}
}

func (gc *GameConnections) broadcast(state json.RawMessage) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	msg := ws.Message{Type: ws.MessageTypeGameState, Payload: state}
	for playerID, conn := range gc.connections {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send state to player %s: %v", playerID, err)
			delete(gc.connections, playerID)
		}
	}
}

func (gc *GameConnections) Len() int {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return len(gc.connections)
}

// CloseConnections sends a close frame to every observer and forgets them.
func (g *Game) CloseConnections(reason string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	for playerID, conn := range g.connections.connections {
		log.Debugf("game %s: closing connection for player %s", g.ID, playerID)
		closeConn(conn, reason)
		delete(g.connections.connections, playerID)
	}
}

func closeConn(conn Conn, reason string) {
	if err := conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	); err != nil {
		log.Debugf("failed to write close frame: %v", err)
	}
	if err := conn.Close(); err != nil {
		log.Debugf("failed to close connection: %v", err)
	}
}
