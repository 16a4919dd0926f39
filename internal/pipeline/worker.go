package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/akashdoifode13/WorldSense/internal/types"
)

// result is one completed extraction, successful or not.
type result struct {
	// url is the link as returned by the search provider.
	url       string
	extracted *types.Extracted
	err       error
}

// runExtractions fans the link list out over a fixed-size worker pool
// and returns a channel of results in completion order. Completion
// order is nondeterministic relative to submission order; consumers
// must not rely on it. The channel is closed once every link has been
// attempted or the context is cancelled.
func (p *Pipeline) runExtractions(ctx context.Context, links []string) <-chan result {
	out := make(chan result)
	jobs := make(chan string)

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				ex, err := p.extract(ctx, link)
				select {
				case out <- result{url: link, extracted: ex, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, link := range links {
			select {
			case jobs <- link:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// extract shields the pool from a panicking extractor; a panic on one
// link becomes a rejection for that link only.
func (p *Pipeline) extract(ctx context.Context, link string) (ex *types.Extracted, err error) {
	defer func() {
		if r := recover(); r != nil {
			ex = nil
			err = fmt.Errorf("extract panicked: %v", r)
		}
	}()
	return p.extractor.Extract(ctx, link)
}
