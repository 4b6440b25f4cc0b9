// Package fs provides file-based persistence for capture artifacts.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoskal/makersnap"
)

// Artifact file names inside a run directory.
const (
	ProfileFile     = "profile.json"
	DiagnosticsFile = "diagnostics.json"
	HTMLFile        = "page.html"
	ScreenshotFile  = "screenshot.png"
	MarkdownFile    = "page.md"
)

// RunDirName returns the per-run directory name for a capture time.
// Example: profile_20260831T142501Z
func RunDirName(t time.Time) string {
	return "profile_" + t.UTC().Format("20060102T150405Z")
}

// Ensure Writer implements makersnap.ArtifactWriter at compile time.
var _ makersnap.ArtifactWriter = (*Writer)(nil)

// Writer persists run artifacts to a timestamped directory under a base
// directory. Optional artifacts (screenshot, markdown) are skipped when
// absent rather than written empty.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes under the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRun writes all artifacts of the run and returns their locations.
func (w *Writer) WriteRun(ctx context.Context, run *makersnap.Run) (*makersnap.ArtifactPaths, error) {
	if run.Profile == nil || run.Diagnostics == nil {
		return nil, makersnap.Errorf(makersnap.EINVALID, "run requires a profile and diagnostics")
	}
	if err := run.Profile.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := makeRunDir(w.baseDir, time.Now())
	if err != nil {
		return nil, err
	}

	paths := &makersnap.ArtifactPaths{Dir: dir}

	if paths.Profile, err = writeJSON(dir, ProfileFile, run.Profile); err != nil {
		return nil, err
	}
	if paths.Diagnostics, err = writeJSON(dir, DiagnosticsFile, run.Diagnostics); err != nil {
		return nil, err
	}

	paths.HTML = filepath.Join(dir, HTMLFile)
	if err := os.WriteFile(paths.HTML, []byte(run.HTML), 0644); err != nil {
		return nil, err
	}

	if len(run.Screenshot) > 0 {
		paths.Screenshot = filepath.Join(dir, ScreenshotFile)
		if err := os.WriteFile(paths.Screenshot, run.Screenshot, 0644); err != nil {
			return nil, err
		}
	}

	if run.Markdown != "" {
		paths.Markdown = filepath.Join(dir, MarkdownFile)
		if err := os.WriteFile(paths.Markdown, []byte(run.Markdown), 0644); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// makeRunDir creates a fresh run directory, appending a numeric suffix
// when the timestamped name is already taken. The directory name has
// second resolution, so back-to-back runs would otherwise overwrite each
// other's artifacts.
func makeRunDir(baseDir string, now time.Time) (string, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return "", err
	}

	name := RunDirName(now)
	dir := filepath.Join(baseDir, name)
	for i := 2; ; i++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		dir = filepath.Join(baseDir, fmt.Sprintf("%s-%d", name, i))
	}
}

// writeJSON marshals v with indentation and writes it under dir.
func writeJSON(dir, name string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", err
	}
	return path, nil
}
