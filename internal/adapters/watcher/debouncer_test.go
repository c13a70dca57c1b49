package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/watcher"
)

type recorder struct {
	mu      sync.Mutex
	batches [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, paths)
}

func (r *recorder) get() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batches
}

func TestDebouncer_CoalescesWithinWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/app/src/b.ts")
		time.Sleep(50 * time.Millisecond)
		d.Add("/app/src/a.ts")
		d.Add("/app/src/b.ts")

		// The window restarts on every Add.
		time.Sleep(90 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.get())

		time.Sleep(20 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.get(), 1)
		assert.Equal(t, []string{"/app/src/a.ts", "/app/src/b.ts"}, rec.get()[0])
	})
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/app/src/a.ts")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("/app/src/b.ts")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/app/src/a.ts"}, {"/app/src/b.ts"}}, rec.get())
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/app/src/a.ts")
		d.Stop()
		d.Add("/app/src/b.ts")

		time.Sleep(time.Second)
		synctest.Wait()

		assert.Empty(t, rec.get())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(10*time.Millisecond, nil)

		d.Add("/app/src/a.ts")
		time.Sleep(20 * time.Millisecond)
		synctest.Wait()
	})
}
