package common

// Flusher is any type that can be flushed.
type Flusher interface {
	Flush() error
}
