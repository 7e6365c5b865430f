package controller

import (
	"encoding/json"
	"github.com/gorilla/websocket"
	"gitlab.com/open-soft/go-rsi-bot/src/event"
	"gitlab.com/open-soft/go-rsi-bot/src/model"
	"go.uber.org/zap"
	"net/http"
	"sync"
	"time"
)

const streamWriteTimeout = 2 * time.Second

// StreamController pushes a dashboard snapshot to every websocket client after each tick.
type StreamController struct {
	Engine   TradingControlInterface
	Upgrader websocket.Upgrader
	Logger   *zap.SugaredLogger

	mutex   sync.Mutex
	clients map[*websocket.Conn]bool
}

func (s *StreamController) GetSubscribedEvents() map[string]func(interface{}) {
	return map[string]func(interface{}){
		event.EventTickCompleted: s.OnTickCompleted,
	}
}

func (s *StreamController) OnTickCompleted(eventModel interface{}) {
	e, ok := eventModel.(event.TickCompleted)
	if !ok {
		return
	}

	s.Broadcast(e.Snapshot)
}

func (s *StreamController) GetStreamAction(w http.ResponseWriter, req *http.Request) {
	connection, err := s.Upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.Logger.Warnf("Stream upgrade failed: %s", err.Error())

		return
	}

	if !s.register(connection, s.Engine.Snapshot()) {
		return
	}

	// client messages are ignored, reading only detects the disconnect
	for {
		if _, _, err := connection.ReadMessage(); err != nil {
			break
		}
	}

	s.unregister(connection)
}

func (s *StreamController) Broadcast(snapshot model.DashboardSnapshot) {
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		s.Logger.Errorf("Stream snapshot encoding failed: %s", err.Error())

		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for connection := range s.clients {
		if err := s.write(connection, encoded); err != nil {
			delete(s.clients, connection)
			_ = connection.Close()
		}
	}
}

func (s *StreamController) ClientCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.clients)
}

func (s *StreamController) register(connection *websocket.Conn, snapshot model.DashboardSnapshot) bool {
	encoded, err := json.Marshal(snapshot)
	if err != nil {
		_ = connection.Close()

		return false
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.write(connection, encoded); err != nil {
		_ = connection.Close()

		return false
	}

	if s.clients == nil {
		s.clients = make(map[*websocket.Conn]bool)
	}
	s.clients[connection] = true

	return true
}

func (s *StreamController) unregister(connection *websocket.Conn) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.clients[connection]; ok {
		delete(s.clients, connection)
		_ = connection.Close()
	}
}

// write must be called with mutex held, websocket connections allow one writer at a time.
func (s *StreamController) write(connection *websocket.Conn, message []byte) error {
	_ = connection.SetWriteDeadline(time.Now().Add(streamWriteTimeout))

	return connection.WriteMessage(websocket.TextMessage, message)
}
