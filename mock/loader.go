package mock

import (
	"context"

	"github.com/jmoskal/makersnap"
)

var _ makersnap.PageLoader = (*Loader)(nil)

// Loader is a mock implementation of makersnap.PageLoader.
type Loader struct {
	LoadFn  func(ctx context.Context, url string) (*makersnap.LoadedPage, error)
	CloseFn func() error
}

func (l *Loader) Load(ctx context.Context, url string) (*makersnap.LoadedPage, error) {
	return l.LoadFn(ctx, url)
}

func (l *Loader) Close() error {
	if l.CloseFn == nil {
		return nil
	}
	return l.CloseFn()
}
