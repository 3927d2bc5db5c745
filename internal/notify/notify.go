// Package notify implements the transient, topic-keyed flash messages shown
// in the status bar. A flash replaces any previous flash on the same topic
// and expires on its own after the configured lifetime.
package notify

import (
	"sync"
	"time"
)

// Level indicates the severity of a flash.
type Level int

// Flash severities.
const (
	LevelInfo Level = iota
	LevelError
)

// Topic used by the file-manager action handlers.
const TopicFileManager = "filemanager"

// Flash is one transient user-visible message.
type Flash struct {
	Topic   string
	Message string
	Level   Level
	At      time.Time
}

// Channel stores the current flash per topic.
type Channel struct {
	mu      sync.RWMutex
	flashes map[string]Flash
	ttl     time.Duration
	now     func() time.Time
}

// DefaultTTL is how long a flash stays visible when no lifetime is
// configured.
const DefaultTTL = 5 * time.Second

// NewChannel creates a flash channel. A non-positive ttl falls back to
// DefaultTTL.
func NewChannel(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{
		flashes: make(map[string]Flash),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Surface publishes an informational flash on topic, replacing any current
// one.
func (c *Channel) Surface(topic, message string) {
	c.publish(topic, message, LevelInfo)
}

// Error publishes an error flash on topic, replacing any current one.
func (c *Channel) Error(topic, message string) {
	c.publish(topic, message, LevelError)
}

func (c *Channel) publish(topic, message string, level Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flashes[topic] = Flash{
		Topic:   topic,
		Message: message,
		Level:   level,
		At:      c.now(),
	}
}

// Clear removes the flash for topic, if any.
func (c *Channel) Clear(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.flashes, topic)
}

// Current returns the most recent unexpired flash across all topics.
// Expired flashes are pruned as a side effect.
func (c *Channel) Current() (Flash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var newest Flash
	found := false
	cutoff := c.now().Add(-c.ttl)
	for topic, f := range c.flashes {
		if f.At.Before(cutoff) {
			delete(c.flashes, topic)
			continue
		}
		if !found || f.At.After(newest.At) {
			newest = f
			found = true
		}
	}
	return newest, found
}

// TTL returns the configured flash lifetime.
func (c *Channel) TTL() time.Duration {
	return c.ttl
}
