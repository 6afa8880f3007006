package mirror

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"gocloud.dev/blob"

	"github.com/meteoswiss-mdr/goesmirror/internal/progress"
)

// Task is one file transfer from an archive key to a mirror path.
type Task struct {
	Key       string
	LocalPath string
	Size      int64
}

// downloadBatch transfers all tasks of one hour partition with a worker
// pool scoped to this batch. Tasks are independent; order within the
// batch does not matter. The first failure cancels the remaining tasks
// and is returned. In dry-run mode tasks are only announced.
func downloadBatch(ctx context.Context, bkt *blob.Bucket, fs afero.Fs, tasks []Task, workers int, rep *progress.Reporter, dryRun bool, logw io.Writer) error {
	if len(tasks) == 0 {
		return nil
	}

	if dryRun {
		for _, t := range tasks {
			fmt.Fprintf(logw, "[goesmirror] would download %s -> %s\n", t.Key, t.LocalPath)
		}
		return nil
	}

	if workers > len(tasks) {
		workers = len(tasks)
	}

	bctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCh := make(chan Task)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range workCh {
				if err := downloadOne(bctx, bkt, fs, task, rep); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel() // abort the rest of the batch
					}
					mu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, t := range tasks {
			select {
			case workCh <- t:
			case <-bctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// downloadOne copies one remote object to its mirror path, creating
// parent directories first. A partial file left behind by a failed copy
// is picked up by the size comparison on the next run.
func downloadOne(ctx context.Context, bkt *blob.Bucket, fs afero.Fs, task Task, rep *progress.Reporter) error {
	if rep != nil {
		rep.FileStarted()
	}

	fail := func(err error) error {
		if rep != nil {
			rep.FileFailed()
		}
		return err
	}

	if err := fs.MkdirAll(filepath.Dir(task.LocalPath), 0o755); err != nil {
		return fail(fmt.Errorf("mirror: create directory for %s: %w", task.LocalPath, err))
	}

	r, err := bkt.NewReader(ctx, task.Key, nil)
	if err != nil {
		return fail(fmt.Errorf("mirror: open %s: %w", task.Key, err))
	}
	defer r.Close()

	f, err := fs.Create(task.LocalPath)
	if err != nil {
		return fail(fmt.Errorf("mirror: create %s: %w", task.LocalPath, err))
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		return fail(fmt.Errorf("mirror: download %s: %w", task.Key, err))
	}
	if err := f.Close(); err != nil {
		return fail(fmt.Errorf("mirror: write %s: %w", task.LocalPath, err))
	}

	if rep != nil {
		rep.FileCompleted(n)
	}
	return nil
}
