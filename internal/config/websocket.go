package config

import (
	"net/http"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
	// ReadLimit caps the size of a single turn message.
	ReadLimit int64
}

func NewWebSocket() *WebSocket {
	return &WebSocket{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ReadLimit: 16 << 20,
	}
}
