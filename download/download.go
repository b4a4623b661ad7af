// Package download streams remote files to disk. A single download guards
// against stalled connections with an inactivity watchdog; batches run
// under a fixed concurrency bound with per-file retry.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"launchmc/errs"
	"launchmc/progress"
)

const (
	// DefaultStallTimeout aborts a download that receives no data for
	// this long while the connection stays open.
	DefaultStallTimeout = 10 * time.Second
	// DefaultConcurrency bounds in-flight downloads in a batch.
	DefaultConcurrency = 10
	// DefaultRetries is the per-file retry count in a batch.
	DefaultRetries = 3
	// DefaultRetryDelay is the fixed delay between attempts.
	DefaultRetryDelay = 5 * time.Second
)

// Task is one batch entry: where to fetch from, where to write, and the
// category label reported with aggregate progress.
type Task struct {
	URL      string
	Dest     string
	Category string
}

// Downloader performs single and batched downloads. The zero value uses a
// scoped HTTP client, the no-op progress sink and the default limits.
type Downloader struct {
	Client       *http.Client
	Sink         progress.Sink
	StallTimeout time.Duration
	Concurrency  int
	Retries      uint64
	RetryDelay   time.Duration
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return &http.Client{}
}

func (d *Downloader) sink() progress.Sink {
	if d.Sink != nil {
		return d.Sink
	}
	return progress.Nop{}
}

func (d *Downloader) stallTimeout() time.Duration {
	if d.StallTimeout > 0 {
		return d.StallTimeout
	}
	return DefaultStallTimeout
}

// Download streams url to dest, creating parent directories, and returns
// the number of bytes written. It fails with a download error on a
// non-success status or when no data arrives within the stall window, and
// emits a file-progress event after every chunk.
func (d *Downloader) Download(ctx context.Context, url string, dest string) (int64, error) {
	// The watchdog cancels the request context when the connection goes
	// quiet; every received chunk rearms it.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stalled := &atomic.Bool{}
	watchdog := time.AfterFunc(d.stallTimeout(), func() {
		stalled.Store(true)
		cancel()
	})
	defer watchdog.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("request %s: %w", url, err)
	}
	resp, err := d.client().Do(req)
	if err != nil {
		if stalled.Load() {
			return 0, errs.Downloadf("download %s stalled, no data for %s", url, d.stallTimeout())
		}
		return 0, errs.Wrap(errs.KindDownload, err, "download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, errs.Downloadf("download %s responded %d (not 200)", url, resp.StatusCode)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	err = os.MkdirAll(filepath.Dir(dest), os.ModePerm)
	if err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", filepath.Dir(dest), err)
	}
	w, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}
	defer w.Close()

	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			watchdog.Reset(d.stallTimeout())
			_, werr := w.Write(buf[:n])
			if werr != nil {
				return downloaded, fmt.Errorf("write %s: %w", dest, werr)
			}
			downloaded += int64(n)
			d.sink().FileProgress(dest, downloaded, total)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				if stalled.Load() {
					return downloaded, errs.Downloadf("download %s stalled, no data for %s", url, d.stallTimeout())
				}
				return downloaded, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return downloaded, errs.Wrap(errs.KindDownload, err, "download %s", url)
		}
	}

	return downloaded, nil
}

// All downloads every task under the concurrency bound. Each task gets the
// configured retries with a fixed delay; the first task that exhausts its
// retries fails the whole batch. A batch-progress event is emitted on each
// completed task.
func (d *Downloader) All(ctx context.Context, tasks []Task) error {
	total := len(tasks)
	concurrency := d.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	retries := d.Retries
	if retries == 0 {
		retries = DefaultRetries
	}
	delay := d.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			policy := backoff.WithContext(
				backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), retries), ctx)
			err := backoff.Retry(func() error {
				_, err := d.Download(ctx, task.URL, task.Dest)
				return err
			}, policy)
			if err != nil {
				return fmt.Errorf("download %s: %w", task.URL, err)
			}
			done := completed.Add(1)
			d.sink().BatchProgress(task.Dest, int(done), total, task.Category)
			return nil
		})
	}
	return g.Wait()
}
