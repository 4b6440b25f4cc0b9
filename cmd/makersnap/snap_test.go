package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jmoskal/makersnap"
	main "github.com/jmoskal/makersnap/cmd/makersnap"
	"github.com/jmoskal/makersnap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Loader: &mock.Loader{
			LoadFn: func(ctx context.Context, url string) (*makersnap.LoadedPage, error) {
				return &makersnap.LoadedPage{
					URL:         url,
					HTML:        `<html><body><h1>darionji</h1><div data-trackid="abc">Widget 99 12</div></body></html>`,
					MarkerFound: true,
				}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error) {
				return &makersnap.Profile{
						SourceURL:   sourceURL,
						AccountName: "darionji",
						Points:      120,
						Models: map[string]*makersnap.ModelEntry{
							"abc": {ID: "abc", Title: "Widget", RawMetricsNumbers: []string{"99", "12"}},
						},
						ModelOrder: []string{"abc"},
					}, &makersnap.Diagnostics{
						URL:            sourceURL,
						HTMLSizeBytes:  84,
						ContentHash:    "deadbeefdeadbeef",
						SelectorsFound: map[string]int{"content-loaded": 1},
					}, nil
			},
		},
		Writer: &mock.Writer{
			WriteRunFn: func(ctx context.Context, run *makersnap.Run) (*makersnap.ArtifactPaths, error) {
				return &makersnap.ArtifactPaths{Dir: "results/profile_20260831T142501Z"}, nil
			},
		},
	}
}

// Story: Successful Capture
//
// A successful run loads the page, extracts the record, persists artifacts,
// and reports a one-line status summary.

func TestSnapCmd_ReportsStatusLine(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := testDeps(&stdout, &stderr)

	cmd := &main.SnapCmd{URL: "https://makerworld.com/en/@darionji"}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "ok https://makerworld.com/en/@darionji account=\"darionji\" points=120 models=1 dir=results/profile_20260831T142501Z\n", stdout.String())
	assert.Empty(t, stderr.String())
}

// Story: Fatal Failures
//
// Navigation failures are fatal: no DOM existed, so no artifacts are
// written and a single failure line names the failure kind and the URL.

func TestSnapCmd_NavigationFailureWritesNoArtifacts(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := testDeps(&stdout, &stderr)

	deps.Loader = &mock.Loader{
		LoadFn: func(ctx context.Context, url string) (*makersnap.LoadedPage, error) {
			return nil, makersnap.Errorf(makersnap.ENAVIGATION, "navigating to %s: timeout", url)
		},
	}
	wrote := false
	deps.Writer = &mock.Writer{
		WriteRunFn: func(ctx context.Context, run *makersnap.Run) (*makersnap.ArtifactPaths, error) {
			wrote = true
			return nil, nil
		},
	}

	cmd := &main.SnapCmd{URL: "https://makerworld.com/en/@darionji"}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, makersnap.ENAVIGATION, makersnap.ErrorCode(err))
	assert.False(t, wrote, "no artifacts may be written when navigation failed")
	assert.Contains(t, stderr.String(), "failed navigation https://makerworld.com/en/@darionji")
	assert.Empty(t, stdout.String())
}

func TestSnapCmd_ExtractionFailureIsFatal(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := testDeps(&stdout, &stderr)

	deps.Extractor = &mock.Extractor{
		ExtractFn: func(html string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error) {
			return nil, nil, makersnap.Errorf(makersnap.EEXTRACTION, "failed to parse HTML")
		},
	}

	cmd := &main.SnapCmd{URL: "https://makerworld.com/en/@darionji"}
	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Equal(t, makersnap.EEXTRACTION, makersnap.ErrorCode(err))
	assert.Contains(t, stderr.String(), "failed extraction")
}

// Story: Optional Artifacts
//
// The markdown rendition and the capture history are wired only when
// requested, and a failed conversion degrades the run instead of failing it.

func TestSnapCmd_MarkdownConversionFailureIsSoft(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := testDeps(&stdout, &stderr)

	deps.Converter = &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return "", makersnap.Errorf(makersnap.EINVALID, "empty HTML input")
		},
	}

	cmd := &main.SnapCmd{URL: "https://makerworld.com/en/@darionji"}
	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "skip markdown")
	assert.Contains(t, stdout.String(), "ok ")
}

func TestSnapCmd_MarkdownIncludedInRun(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := testDeps(&stdout, &stderr)

	deps.Converter = &mock.Converter{
		ConvertFn: func(html string) (string, error) { return "# darionji\n", nil },
	}
	var gotRun *makersnap.Run
	deps.Writer = &mock.Writer{
		WriteRunFn: func(ctx context.Context, run *makersnap.Run) (*makersnap.ArtifactPaths, error) {
			gotRun = run
			return &makersnap.ArtifactPaths{Dir: "results/x"}, nil
		},
	}

	cmd := &main.SnapCmd{URL: "https://makerworld.com/en/@darionji"}
	require.NoError(t, cmd.Run(deps))

	require.NotNil(t, gotRun)
	assert.Equal(t, "# darionji\n", gotRun.Markdown)
}

func TestSnapCmd_ArchivesSnapshotInDocumentOrder(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	deps := testDeps(&stdout, &stderr)

	deps.Extractor = &mock.Extractor{
		ExtractFn: func(html string, sourceURL string) (*makersnap.Profile, *makersnap.Diagnostics, error) {
			return &makersnap.Profile{
					SourceURL: sourceURL,
					Points:    7,
					Models: map[string]*makersnap.ModelEntry{
						"b": {ID: "b", Title: "Second"},
						"a": {ID: "a", Title: "First"},
					},
					ModelOrder: []string{"a", "b"},
				}, &makersnap.Diagnostics{
					URL:            sourceURL,
					SelectorsFound: map[string]int{},
				}, nil
		},
	}

	var gotSnap *makersnap.Snapshot
	var gotModels []*makersnap.SnapshotModel
	deps.Snapshots = &mock.SnapshotService{
		CreateSnapshotFn: func(ctx context.Context, snap *makersnap.Snapshot, models []*makersnap.SnapshotModel) error {
			gotSnap = snap
			gotModels = models
			return nil
		},
	}

	cmd := &main.SnapCmd{URL: "https://makerworld.com/en/@darionji"}
	require.NoError(t, cmd.Run(deps))

	require.NotNil(t, gotSnap)
	assert.Equal(t, 7, gotSnap.Points)
	assert.Equal(t, 2, gotSnap.ModelCount)
	require.Len(t, gotModels, 2)
	assert.Equal(t, "a", gotModels[0].ModelID)
	assert.Equal(t, "b", gotModels[1].ModelID)
}
