package transport

// Client abstracts the WebSocket connection layer that carries the
// JSON message protocol.
type Client interface {
	// ReadMessage blocks until a complete JSON frame is received and
	// returns its raw bytes.
	ReadMessage() ([]byte, error)

	// WriteMessage sends a single JSON frame to the client.
	WriteMessage(data []byte) error

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the client's address for logging.
	RemoteAddr() string
}
