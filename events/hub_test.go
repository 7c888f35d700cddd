package events

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// overlapConn fails the invariant when two writes land concurrently.
type overlapConn struct {
	active   int32
	overlaps int32
	writes   int32
}

func (c *overlapConn) WriteMessage(messageType int, data []byte) error {
	if atomic.AddInt32(&c.active, 1) > 1 {
		atomic.AddInt32(&c.overlaps, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.active, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func TestHubRegisterUnregisterCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.Count())

	hub.Register("a", &overlapConn{})
	hub.Register("b", &overlapConn{})
	assert.Equal(t, 2, hub.Count())

	hub.Unregister("a")
	assert.Equal(t, 1, hub.Count())
}

func TestPublishSerializesWritesPerClient(t *testing.T) {
	hub := NewHub()
	conn := &overlapConn{}
	hub.Register("client-1", conn)

	publisher := NewPublisher(hub, nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			publisher.Publish(EventInventoryUpdated, map[string]interface{}{"n": 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), atomic.LoadInt32(&conn.writes))
	assert.Zero(t, atomic.LoadInt32(&conn.overlaps))
}
