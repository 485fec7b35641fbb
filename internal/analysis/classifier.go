package analysis

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Classifier produces a verdict for an ingredient list. Implementations are
// interchangeable: Local runs the engine in process, remote adapters call a
// classification service over the network.
type Classifier interface {
	Classify(ctx context.Context, ingredients []string) (Verdict, error)
}

// Local adapts an Engine to the Classifier interface. It never fails.
type Local struct {
	Engine *Engine // nil means Default()
}

// Classify implements Classifier.
func (l Local) Classify(_ context.Context, ingredients []string) (Verdict, error) {
	e := l.Engine
	if e == nil {
		e = defaultEngine
	}
	return e.Classify(ingredients), nil
}

// Fallback tries Primary and answers from Secondary when Primary is skipped
// or returns an error.
type Fallback struct {
	Primary   Classifier
	Secondary Classifier

	// Available reports whether Primary is worth trying. Nil means always.
	Available func() bool
	// OnFallback is called with the Primary error before Secondary is used.
	OnFallback func(err error)
}

// ErrNoClassifier is returned by Fallback when it has nothing to call.
var ErrNoClassifier = errors.New("no classifier configured")

// Classify implements Classifier.
func (f *Fallback) Classify(ctx context.Context, ingredients []string) (Verdict, error) {
	if f.Primary != nil && (f.Available == nil || f.Available()) {
		v, err := f.Primary.Classify(ctx, ingredients)
		if err == nil {
			return v, nil
		}
		slog.Warn("primary classifier failed, using fallback", "error", err)
		if f.OnFallback != nil {
			f.OnFallback(err)
		}
	}
	if f.Secondary == nil {
		return Verdict{}, ErrNoClassifier
	}
	return f.Secondary.Classify(ctx, ingredients)
}

// Delayed waits Delay before delegating to Next. The wait is abandoned
// when ctx is done.
type Delayed struct {
	Next  Classifier
	Delay time.Duration
}

// Classify implements Classifier.
func (d Delayed) Classify(ctx context.Context, ingredients []string) (Verdict, error) {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Verdict{}, ctx.Err()
		case <-timer.C:
		}
	}
	return d.Next.Classify(ctx, ingredients)
}
