package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlapConn records whether two WriteJSON calls ever ran at the same time.
type overlapConn struct {
	active   int32
	overlaps int32
	writes   int32
	received chan interface{}
}

func (c *overlapConn) WriteJSON(v interface{}) error {
	if atomic.AddInt32(&c.active, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.active, -1)
	atomic.AddInt32(&c.writes, 1)
	if c.received != nil {
		c.received <- v
	}
	return nil
}

func (c *overlapConn) ReadJSON(dest interface{}) error { return nil }
func (c *overlapConn) Close() error                    { return nil }

func TestLockedConnSerializesWriters(t *testing.T) {
	raw := &overlapConn{}
	conn := NewLockedConn(raw)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 4; j++ {
				_ = conn.WriteJSON(map[string]string{"type": "pong"})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(16*4), atomic.LoadInt32(&raw.writes))
	assert.Zero(t, atomic.LoadInt32(&raw.overlaps), "writes must never run concurrently")
}

func TestFanOutChatEventDelivers(t *testing.T) {
	raw := &overlapConn{received: make(chan interface{}, 1)}
	RegisterUserConnection("fan-out-user", NewLockedConn(raw))
	defer UnregisterUserConnection("fan-out-user")

	FanOutChatEvent("fan-out-user", ChatEvent{Type: "message", ConversationID: "c1"})

	select {
	case got := <-raw.received:
		event, ok := got.(ChatEvent)
		require.True(t, ok)
		assert.Equal(t, "message", event.Type)
		assert.Equal(t, "c1", event.ConversationID)
	case <-time.After(time.Second):
		t.Fatal("event never reached the connection")
	}

	// No registered connection for this user; must be a no-op.
	FanOutChatEvent("nobody-here", ChatEvent{Type: "message"})
}
