package imagecache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDownloader records download calls and optionally blocks each call
// until release is closed.
type countingDownloader struct {
	calls   atomic.Int64
	data    []byte
	release chan struct{}
}

func (d *countingDownloader) DownloadImage(_ context.Context, _ string) []byte {
	d.calls.Add(1)
	if d.release != nil {
		<-d.release
	}
	return d.data
}

func TestGetOrFetch_SecondCallIsCacheHit(t *testing.T) {
	d := &countingDownloader{data: []byte("image-bytes")}
	c := New(d, nil)

	first := c.GetOrFetch(context.Background(), "http://example.com/a.jpg")
	second := c.GetOrFetch(context.Background(), "http://example.com/a.jpg")

	assert.Equal(t, []byte("image-bytes"), first)
	assert.Equal(t, []byte("image-bytes"), second)
	assert.Equal(t, int64(1), d.calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestGetOrFetch_DistinctKeysDownloadSeparately(t *testing.T) {
	d := &countingDownloader{data: []byte("img")}
	c := New(d, nil)

	c.GetOrFetch(context.Background(), "http://example.com/a.jpg")
	c.GetOrFetch(context.Background(), "http://example.com/b.jpg")

	assert.Equal(t, int64(2), d.calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestGetOrFetch_ConcurrentSameKeySingleFlight(t *testing.T) {
	d := &countingDownloader{
		data:    []byte("img"),
		release: make(chan struct{}),
	}
	c := New(d, nil)

	const callers = 16
	results := make([][]byte, callers)

	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := range callers {
		go func(i int) {
			started.Done()
			results[i] = c.GetOrFetch(context.Background(), "http://example.com/a.jpg")
			done.Done()
		}(i)
	}

	started.Wait()
	close(d.release)
	done.Wait()

	for i := range callers {
		require.Equal(t, []byte("img"), results[i], "caller %d", i)
	}
	assert.Equal(t, int64(1), d.calls.Load(), "concurrent callers must share one download")
}

func TestGetOrFetch_FailureIsNotCached(t *testing.T) {
	d := &countingDownloader{data: nil}
	c := New(d, nil)

	assert.Nil(t, c.GetOrFetch(context.Background(), "http://example.com/a.jpg"))
	assert.Nil(t, c.GetOrFetch(context.Background(), "http://example.com/a.jpg"))

	// Both calls hit the downloader: failures must be retried, not cached.
	assert.Equal(t, int64(2), d.calls.Load())
	assert.Equal(t, 0, c.Len())
}

func TestClear(t *testing.T) {
	d := &countingDownloader{data: []byte("img")}
	c := New(d, nil)

	c.GetOrFetch(context.Background(), "http://example.com/a.jpg")
	require.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	c.GetOrFetch(context.Background(), "http://example.com/a.jpg")
	assert.Equal(t, int64(2), d.calls.Load(), "cleared entry downloads again")
}
