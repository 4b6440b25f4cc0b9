package mock

import (
	"context"

	"github.com/jmoskal/makersnap"
)

var _ makersnap.ArtifactWriter = (*Writer)(nil)

// Writer is a mock implementation of makersnap.ArtifactWriter.
type Writer struct {
	WriteRunFn func(ctx context.Context, run *makersnap.Run) (*makersnap.ArtifactPaths, error)
}

func (w *Writer) WriteRun(ctx context.Context, run *makersnap.Run) (*makersnap.ArtifactPaths, error) {
	return w.WriteRunFn(ctx, run)
}

var _ makersnap.Converter = (*Converter)(nil)

// Converter is a mock implementation of makersnap.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
