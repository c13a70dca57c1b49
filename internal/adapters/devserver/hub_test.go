package devserver

import (
	"errors"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
)

func TestHub_ReloadSkipsFullQueues(t *testing.T) {
	h := NewHub(quietLogger(t))
	fast := newClient(&fakeSocket{})
	slow := newClient(&fakeSocket{})
	h.add(fast)
	h.add(slow)
	for range sendBuffer {
		slow.send <- reloadMessage
	}

	sent := h.Reload()

	assert.Equal(t, 1, sent)
	assert.Len(t, fast.send, 1)
	assert.Len(t, slow.send, sendBuffer)
	assert.JSONEq(t, `{"action":"reload"}`, string(<-fast.send))
}

func TestHub_WriteLoopDeliversQueuedMessages(t *testing.T) {
	sock := &fakeSocket{}
	c := newClient(sock)
	c.send <- []byte("a")
	c.send <- []byte("b")
	c.close()

	c.writeLoop()

	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, sock.written)
}

func TestHub_Close(t *testing.T) {
	h := NewHub(quietLogger(t))
	sock := &fakeSocket{}
	c := newClient(sock)
	h.add(c)
	go c.writeLoop()

	h.Close()
	h.remove(c)

	assert.Zero(t, h.Len())
	assert.True(t, sock.closed)
	_, open := <-c.send
	assert.False(t, open)
}

// blockingSocket holds every write until release is closed.
type blockingSocket struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSocket) WriteMessage(_ int, _ []byte) error {
	b.started <- struct{}{}
	<-b.release
	return nil
}

func (b *blockingSocket) Close() error { return nil }

func TestHub_RemoveWaitsForWriter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := NewHub(quietLogger(t))
		sock := &blockingSocket{started: make(chan struct{}, 1), release: make(chan struct{})}
		c := newClient(sock)
		h.add(c)
		go c.writeLoop()

		c.send <- reloadMessage
		<-sock.started

		removed := make(chan struct{})
		go func() {
			h.remove(c)
			close(removed)
		}()
		synctest.Wait()

		select {
		case <-removed:
			t.Fatal("remove returned while a write was in progress")
		default:
		}
		assert.Zero(t, h.Len())

		close(sock.release)
		synctest.Wait()

		select {
		case <-removed:
		default:
			t.Fatal("remove did not return after the write finished")
		}
	})
}

// failingSocket rejects every write.
type failingSocket struct{}

func (failingSocket) WriteMessage(_ int, _ []byte) error { return errors.New("broken pipe") }

func (failingSocket) Close() error { return nil }

func TestHub_RemoveAfterWriteFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := NewHub(quietLogger(t))
		c := newClient(failingSocket{})
		h.add(c)
		go c.writeLoop()

		c.send <- reloadMessage
		synctest.Wait()

		h.remove(c)
		assert.Zero(t, h.Len())
	})
}
