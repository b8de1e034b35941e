package md2deck

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// ConverterPool lends out up to Size converters, each with its own browser,
// so PDF decks can render in parallel. Converters are built on first need
// with the pool's options and reused afterwards.
type ConverterPool struct {
	opts   []Option
	tokens chan struct{}   // one per converter on loan
	idle   chan *Converter // built and returned, ready for reuse
	done   chan struct{}   // closed by Close

	mu     sync.Mutex
	all    []*Converter
	closed bool
}

// NewConverterPool creates a pool lending at most n converters at once.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	n = max(n, MinPoolSize)
	return &ConverterPool{
		opts:   opts,
		tokens: make(chan struct{}, n),
		idle:   make(chan *Converter, n),
		done:   make(chan struct{}),
	}
}

// Size returns the number of converters the pool can lend at once.
func (p *ConverterPool) Size() int {
	return cap(p.tokens)
}

// Acquire lends a converter, reusing an idle one or building a new one.
// It waits while Size converters are on loan, until ctx is done or the
// pool is closed.
func (p *ConverterPool) Acquire(ctx context.Context) (*Converter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case p.tokens <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return nil, ErrPoolClosed
	}

	c, err := p.take()
	if err != nil {
		<-p.tokens
		return nil, err
	}
	return c, nil
}

func (p *ConverterPool) take() (*Converter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}

	select {
	case c := <-p.idle:
		return c, nil
	default:
	}

	c, err := NewConverter(p.opts...)
	if err != nil {
		return nil, err
	}
	p.all = append(p.all, c)
	return c, nil
}

// Release returns a converter taken with Acquire. Releasing after Close
// does nothing; Close already shut the converter down.
func (p *ConverterPool) Release(c *Converter) {
	if c == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Never blocks: idle holds at most as many converters as tokens allow.
	p.idle <- c
	<-p.tokens
}

// Close shuts down every converter the pool built and fails pending and
// later Acquire calls with ErrPoolClosed.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	all := p.all
	p.all = nil
	p.mu.Unlock()

	var errs []error
	for _, c := range all {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BatchResult is the outcome of one input of ConvertBatch.
type BatchResult struct {
	Result *ConvertResult
	Err    error
}

// ConvertBatch converts inputs concurrently, at most Size at a time.
// Results are indexed like inputs; one failure does not stop the others.
func (p *ConverterPool) ConvertBatch(ctx context.Context, inputs []Input) []BatchResult {
	if len(inputs) == 0 {
		return nil
	}

	results := make([]BatchResult, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Go(func() {
			results[i] = p.convertOne(ctx, in)
		})
	}
	wg.Wait()
	return results
}

func (p *ConverterPool) convertOne(ctx context.Context, in Input) BatchResult {
	c, err := p.Acquire(ctx)
	if err != nil {
		return BatchResult{Err: err}
	}
	defer p.Release(c)

	res, err := c.Convert(ctx, in)
	return BatchResult{Result: res, Err: err}
}

// ResolvePoolSize returns workers when positive. Otherwise it uses half of
// GOMAXPROCS, which automaxprocs aligns with container CPU quotas, clamped
// to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)
}
