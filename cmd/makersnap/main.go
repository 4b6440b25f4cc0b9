package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jmoskal/makersnap"
	"github.com/jmoskal/makersnap/fs"
	"github.com/jmoskal/makersnap/goquery"
	"github.com/jmoskal/makersnap/htmltomarkdown"
	makerhttp "github.com/jmoskal/makersnap/http"
	"github.com/jmoskal/makersnap/rod"
	makerslog "github.com/jmoskal/makersnap/slog"
	"github.com/jmoskal/makersnap/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("makersnap"),
		kong.Description("Capture a structured snapshot of a MakerWorld profile page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	if err := validateURL(cli.URL); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	loader, err := newLoader(cli, stderr)
	if err != nil {
		return err
	}
	defer loader.Close()
	deps.Loader = rod.NewLoggingLoader(loader, logger)

	deps.Extractor = makerslog.NewLoggingExtractor(goquery.NewExtractor(), logger)
	deps.Writer = fs.NewWriter(cli.Out)

	if cli.Markdown {
		deps.Converter = htmltomarkdown.NewConverter()
	}

	if cli.Archive != "" {
		db := sqlite.NewDB(cli.Archive)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()
		deps.Snapshots = sqlite.NewSnapshotService(db)
	}

	cmd := &SnapCmd{URL: cli.URL}
	return cmd.Run(deps)
}

// newLoader selects the page loader: headless Chrome by default, plain
// HTTP with --static.
func newLoader(cli *CLI, stderr io.Writer) (makersnap.PageLoader, error) {
	if cli.Static {
		opts := []makerhttp.Option{makerhttp.WithTimeout(cli.NavTimeout)}
		if cli.UserAgent != "" {
			opts = append(opts, makerhttp.WithUserAgent(cli.UserAgent))
		}
		return makerhttp.NewLoader(opts...), nil
	}

	opts := []rod.Option{
		rod.WithNavTimeout(cli.NavTimeout),
		rod.WithMarkerTimeout(cli.MarkerTimeout),
		rod.WithStealth(!cli.NoStealth),
	}
	if cli.UserAgent != "" {
		opts = append(opts, rod.WithUserAgent(cli.UserAgent))
	}

	loader, err := rod.NewLoader(opts...)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed (or use --static)")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return loader, nil
}

// validateURL requires a well-formed absolute http(s) URL.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("URL must be absolute (http or https): %q", raw)
	}
	return nil
}
