package main

import (
	"context"
	"io"
	"time"

	"github.com/jmoskal/makersnap"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Out           string        `short:"o" default:"results" help:"Base directory for run artifacts"`
	NavTimeout    time.Duration `default:"60s" help:"Navigation timeout (fatal on expiry)"`
	MarkerTimeout time.Duration `default:"30s" help:"Wait budget for the content-loaded marker (non-fatal on expiry)"`
	UserAgent     string        `help:"User agent override"`
	Static        bool          `help:"Fetch with plain HTTP instead of a headless browser (no JavaScript rendering)"`
	NoStealth     bool          `help:"Disable stealth scripts in the browser"`
	Markdown      bool          `short:"m" help:"Also write a Markdown rendition of the page"`
	Archive       string        `help:"SQLite database path for the capture history"`
	Verbose       bool          `short:"v" help:"Enable debug logging"`
	URL           string        `arg:"" required:"" help:"Profile URL to capture"`
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Loader    makersnap.PageLoader
	Extractor makersnap.ProfileExtractor
	Writer    makersnap.ArtifactWriter

	// Optional collaborators; nil disables the corresponding artifact.
	Converter makersnap.Converter
	Snapshots makersnap.SnapshotService
}

// SnapCmd handles the main capture operation.
type SnapCmd struct {
	URL string
}
