package services

import "sync"

// Reporter is the user-facing message channel.
type Reporter interface {
	Report(message string)
}

// MessageCollector keeps reported messages so a handler can return them.
type MessageCollector struct {
	mu       sync.Mutex
	messages []string
}

func NewMessageCollector() *MessageCollector {
	return &MessageCollector{}
}

func (c *MessageCollector) Report(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns a copy of everything reported so far.
func (c *MessageCollector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}
