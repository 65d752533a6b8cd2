package publisher

// Publisher emits scrape events for downstream consumers
type Publisher interface {
	// Publish publishes a message under the given event key
	Publish(key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
