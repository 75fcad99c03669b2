package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	// BroadcastAll sends a message to every connected client.
	BroadcastAll(msgType string, payload interface{})
	// SendTo sends a targeted message to one connection. Unknown
	// connection ids are ignored.
	SendTo(connID string, msgType string, payload interface{})
}
