package migration

import (
	"context"
	"time"

	"github.com/0chain/bucketxfer/types"
	"golang.org/x/sync/errgroup"
)

// BatchRunner drives fn over objects in consecutive windows of Width items.
// A Width below 1 runs one object at a time.
// All members of a window run concurrently and the next window starts only
// after every member of the current one has returned.
type BatchRunner struct {
	Width int
	Pause time.Duration
	// OnWindow is called after each window with its 0-based index, its size
	// and the number of objects processed so far.
	OnWindow func(index, size, done, total int)

	sleep func(ctx context.Context, d time.Duration) error
}

func (r *BatchRunner) Run(ctx context.Context, objects []types.ObjectRecord, fn func(context.Context, types.ObjectRecord)) error {
	total := len(objects)
	width := r.Width
	if width <= 0 {
		width = 1
	}
	sleep := r.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for start, index := 0, 0; start < total; start, index = start+width, index+1 {
		end := start + width
		if end > total {
			end = total
		}
		window := objects[start:end]

		var g errgroup.Group
		g.SetLimit(width)
		for _, rec := range window {
			rec := rec
			g.Go(func() error {
				fn(ctx, rec)
				return nil
			})
		}
		_ = g.Wait()

		if r.OnWindow != nil {
			r.OnWindow(index, len(window), end, total)
		}

		if end < total && r.Pause > 0 {
			if err := sleep(ctx, r.Pause); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
