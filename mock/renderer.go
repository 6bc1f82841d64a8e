package mock

import (
	"context"

	"github.com/gleanerhq/gleaner"
)

var _ gleaner.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of gleaner.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string, opts gleaner.RenderOptions) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string, opts gleaner.RenderOptions) (string, error) {
	return r.RenderFn(ctx, url, opts)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}
