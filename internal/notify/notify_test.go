package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceAndCurrent(t *testing.T) {
	c := NewChannel(time.Minute)
	c.Surface(TopicFileManager, "copied report.pdf")

	f, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, TopicFileManager, f.Topic)
	assert.Equal(t, "copied report.pdf", f.Message)
	assert.Equal(t, LevelInfo, f.Level)
}

func TestErrorReplacesFlashOnSameTopic(t *testing.T) {
	c := NewChannel(time.Minute)
	c.Surface(TopicFileManager, "first")
	c.Error(TopicFileManager, "delete failed")

	f, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "delete failed", f.Message)
	assert.Equal(t, LevelError, f.Level)
}

func TestClear(t *testing.T) {
	c := NewChannel(time.Minute)
	c.Error(TopicFileManager, "boom")
	c.Clear(TopicFileManager)

	_, ok := c.Current()
	assert.False(t, ok)
}

func TestCurrentReturnsNewestAcrossTopics(t *testing.T) {
	c := NewChannel(time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Surface("a", "older")
	c.now = func() time.Time { return base.Add(time.Second) }
	c.Surface("b", "newer")

	f, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "newer", f.Message)
}

func TestExpiry(t *testing.T) {
	c := NewChannel(time.Second)
	base := time.Now()
	c.now = func() time.Time { return base }
	c.Error(TopicFileManager, "transient")

	c.now = func() time.Time { return base.Add(2 * time.Second) }
	_, ok := c.Current()
	assert.False(t, ok)

	// Expired flashes are pruned, not just hidden.
	c.now = func() time.Time { return base }
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestDefaultTTL(t *testing.T) {
	c := NewChannel(0)
	assert.Equal(t, DefaultTTL, c.TTL())
}
