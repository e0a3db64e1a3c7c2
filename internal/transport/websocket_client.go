package transport

import (
	"github.com/gorilla/websocket"
)

// MaxWebSocketMessageSize is the maximum size of a WebSocket message in
// bytes, preventing a malicious client from sending an oversized frame
// to exhaust server memory.
const MaxWebSocketMessageSize = 4096

// WebSocketClient wraps a WebSocket connection. Unlike the telnet
// client this replaces, a frame is always exactly one JSON message —
// there is no line-buffering to do.
type WebSocketClient struct {
	conn *websocket.Conn
}

// NewWebSocketClient creates a new WebSocketClient from a WebSocket connection.
func NewWebSocketClient(conn *websocket.Conn) *WebSocketClient {
	conn.SetReadLimit(MaxWebSocketMessageSize)
	return &WebSocketClient{conn: conn}
}

// ReadMessage blocks for the next text frame and returns its raw bytes.
func (c *WebSocketClient) ReadMessage() ([]byte, error) {
	_, message, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return message, nil
}

// WriteMessage sends data as a single WebSocket text frame.
func (c *WebSocketClient) WriteMessage(data []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Close closes the WebSocket connection.
func (c *WebSocketClient) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
