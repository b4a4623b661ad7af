package download

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"launchmc/errs"
)

type recordingSink struct {
	mu    sync.Mutex
	files []string
	batch []string
}

func (s *recordingSink) FileProgress(path string, downloaded, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, fmt.Sprintf("%s %d/%d", path, downloaded, total))
}

func (s *recordingSink) BatchProgress(path string, completed, total int, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = append(s.batch, fmt.Sprintf("%d/%d %s", completed, total, category))
}

func (s *recordingSink) Console(string) {}

func TestDownload(t *testing.T) {
	body := []byte("some file content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer server.Close()

	sink := &recordingSink{}
	d := &Downloader{Sink: sink}
	dest := filepath.Join(t.TempDir(), "nested", "dir", "file.bin")
	n, err := d.Download(context.Background(), server.URL, dest)
	require.NoError(t, err)
	require.Equal(t, int64(len(body)), n)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, body, data)
	require.NotEmpty(t, sink.files)
}

func TestDownloadBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	d := &Downloader{}
	_, err := d.Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "f"))
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindDownload))
}

func TestDownloadStallDetection(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1024")
		w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		<-release // hold the connection open without sending more data
	}))
	defer server.Close()
	defer close(release)

	d := &Downloader{StallTimeout: 150 * time.Millisecond}
	start := time.Now()
	_, err := d.Download(context.Background(), server.URL, filepath.Join(t.TempDir(), "f"))
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindDownload))
	require.Contains(t, err.Error(), "stalled")
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestAllConcurrencyBound(t *testing.T) {
	var inFlight, peak atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte("x"))
	}))
	defer server.Close()

	dir := t.TempDir()
	tasks := make([]Task, 50)
	for i := range tasks {
		tasks[i] = Task{
			URL:      server.URL,
			Dest:     filepath.Join(dir, fmt.Sprintf("file-%d", i)),
			Category: "Library",
		}
	}

	sink := &recordingSink{}
	d := &Downloader{Sink: sink}
	require.NoError(t, d.All(context.Background(), tasks))
	require.LessOrEqual(t, peak.Load(), int64(10))
	require.Len(t, sink.batch, 50)
}

func TestAllRetriesThenFails(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	d := &Downloader{Retries: 2, RetryDelay: 10 * time.Millisecond}
	err := d.All(context.Background(), []Task{{
		URL:      server.URL,
		Dest:     filepath.Join(t.TempDir(), "f"),
		Category: "Library",
	}})
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindDownload))
	// Initial attempt plus two retries.
	require.Equal(t, int64(3), hits.Load())
}

func TestAllRecoversAfterRetry(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := &Downloader{Retries: 3, RetryDelay: 10 * time.Millisecond}
	dest := filepath.Join(t.TempDir(), "f")
	err := d.All(context.Background(), []Task{{URL: server.URL, Dest: dest, Category: "Asset"}})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "ok", string(data))
}
