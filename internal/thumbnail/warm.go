package thumbnail

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Warm decodes thumbnails for sources ahead of the first render. It stops early
// when ctx is cancelled.
func (r *ImageRenderer) Warm(ctx context.Context, sources []string) error {
	p := pool.New().
		WithMaxGoroutines(runtime.GOMAXPROCS(0)).
		WithContext(ctx)

	for _, src := range sources {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.body(src)
			return nil
		})
	}
	return p.Wait()
}
