// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"qsk/internal/gates"
	"qsk/internal/sk"
	"qsk/internal/so3"
	"qsk/internal/target"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines (>=1)
	Depth   int // Solovay-Kitaev recursion depth
}

// Decomposer is the subset of sk.Decomposer the pipeline needs.
type Decomposer interface {
	FromPoints(ctx context.Context, from, to so3.Vec, n int) (sk.Decomposition, error)
	FromU2(ctx context.Context, u gates.Matrix, n int) (sk.Decomposition, error)
}

// Decompose runs one target through d.
func Decompose(ctx context.Context, d Decomposer, t target.Target, depth int) (sk.Decomposition, error) {
	var (
		res sk.Decomposition
		err error
	)
	if t.IsGate() {
		g, lerr := gates.Lookup(t.Gate)
		if lerr != nil {
			return sk.Decomposition{}, fmt.Errorf("target %s: %w", t.ID, lerr)
		}
		res, err = d.FromU2(ctx, g.Matrix, depth)
	} else {
		res, err = d.FromPoints(ctx, t.From, t.To, depth)
	}
	if err != nil {
		return sk.Decomposition{}, fmt.Errorf("target %s: %w", t.ID, err)
	}
	res.ID = t.ID
	return res, nil
}

// ForEachDecomposition decomposes every target and calls visit with the
// results in the order of targets. The first error (including a visit error
// or context cancellation) stops the remaining work and is returned.
func ForEachDecomposition(
	ctx context.Context,
	cfg Config,
	targets []target.Target,
	d Decomposer,
	visit func(sk.Decomposition) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan int)
	slots := make([]chan sk.Decomposition, len(targets))
	for i := range slots {
		slots[i] = make(chan sk.Decomposition, 1)
	}

	g.Go(func() error {
		defer close(jobs)
		for i := range targets {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < cfg.Threads; w++ {
		g.Go(func() error {
			for i := range jobs {
				res, err := Decompose(gctx, d, targets[i], cfg.Depth)
				if err != nil {
					return err
				}
				slots[i] <- res
			}
			return nil
		})
	}

	// Collector: emits in input order, waiting on each slot in turn.
	g.Go(func() error {
		for i := range slots {
			select {
			case res := <-slots[i]:
				if err := visit(res); err != nil {
					return err
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}
