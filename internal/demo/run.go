package demo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sirkon/mindala/tracer"
)

// Result is what a scenario run produced.
type Result struct {
	Name  string
	Value any
	Graph []tracer.GraphEntry

	// Depth is the stack depth left after the run. Non-zero means unbalanced frames.
	Depth int
}

// Run executes sc under a fresh tracer with its own state.
func Run(ctx context.Context, sc Scenario, log *zap.Logger, opts ...tracer.Option) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("scenario", sc.Name))

	var s tracer.State
	t := tracer.New(append([]tracer.Option{tracer.WithState(&s), tracer.WithLogger(log)}, opts...)...)

	var value any
	if err := t.Run(func() error {
		v, err := sc.Run(tracer.NewContext(ctx, t), &s)
		value = v
		return err
	}); err != nil {
		return nil, fmt.Errorf("run scenario %s: %w", sc.Name, err)
	}

	res := &Result{
		Name:  sc.Name,
		Value: value,
		Graph: t.Graph(),
		Depth: t.Depth(),
	}
	log.Debug("scenario finished", zap.Int("entries", len(res.Graph)), zap.Int("depth", res.Depth))

	return res, nil
}
