package mock

import (
	"context"

	"github.com/fwojciec/webtab"
)

var _ webtab.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webtab.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error)
}

func (e *Extractor) Extract(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
	return e.ExtractFn(ctx, urls, params)
}
