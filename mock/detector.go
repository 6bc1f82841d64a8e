package mock

import (
	"context"

	"github.com/gleanerhq/gleaner"
)

var _ gleaner.Detector = (*Detector)(nil)

// Detector is a mock implementation of gleaner.Detector.
type Detector struct {
	DetectFn      func(ctx context.Context, url string) gleaner.SourceType
	IsSupportedFn func(url string) bool
}

func (d *Detector) Detect(ctx context.Context, url string) gleaner.SourceType {
	return d.DetectFn(ctx, url)
}

func (d *Detector) IsSupported(url string) bool {
	if d.IsSupportedFn == nil {
		return true
	}
	return d.IsSupportedFn(url)
}
