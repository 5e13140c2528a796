package core

// Frame is one serialized envelope ready for the transport.
type Frame []byte

// Conn abstracts a player's messaging transport.
// Owned by the adapter; the adapter must Close() it.
type Conn interface {
	TrySend(Frame) error
	Close()
}
