package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/odin"
	"github.com/fwojciec/odin/catalog"
	"github.com/fwojciec/odin/etree"
	"github.com/fwojciec/odin/fs"
	"github.com/fwojciec/odin/goquery"
	odinhttp "github.com/fwojciec/odin/http"
	odinslog "github.com/fwojciec/odin/slog"
	"github.com/fwojciec/odin/sqlite"
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
type Main struct {
	// Database and page cache paths. Set before calling Run().
	DBPath   string
	PagePath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	Snapshots odin.SnapshotService
	Fetcher   odin.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		PagePath: defaultPagePath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("odin"),
		kong.Description("List the devices supported by OpenWrt."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"devices_url": odin.DevicesURL},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'odin --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	renderer, err := newRenderer(cli.Format)
	if err != nil {
		return err
	}
	deps.Renderer = renderer

	if cli.DB != "" {
		m.DBPath = fs.ExpandPath(cli.DB)
	}
	deps.PagePath = m.PagePath

	needsDB := cmd == "snapshots" || cmd == "forget" || !cli.NoCache
	if needsDB && m.Snapshots == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ODIN_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		m.Snapshots = sqlite.NewSnapshotService(m.DB)
	}
	deps.Snapshots = m.Snapshots

	switch cmd {
	case "fetch":
		if cli.Offline {
			fmt.Fprintln(stderr, "error: fetch downloads the page and cannot run with --offline")
			return odin.Errorf(odin.EINVALID, "fetch cannot run with --offline")
		}
		deps.Loader = m.newLoader(cli, cmd, deps.Logger)
	case "brands", "models", "export":
		deps.Loader = m.newLoader(cli, cmd, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newLoader wires the acquisition pipeline: the local page first (unless
// fetching), then the wiki, feeding the goquery extractor.
func (m *Main) newLoader(cli *CLI, cmd string, logger *slog.Logger) *catalog.Loader {
	if cmd != "fetch" && isCatalogExport(cli.File) {
		return &catalog.Loader{
			Sources:   []odin.Source{odinslog.NewLoggingSource(fs.NewFileSource(cli.File), logger)},
			Extractor: odinslog.NewLoggingExtractor(etree.NewExtractor(), logger),
		}
	}

	var sources []odin.Source

	if cmd != "fetch" {
		path := m.PagePath
		if cli.File != "" {
			path = cli.File
		}
		sources = append(sources, odinslog.NewLoggingSource(fs.NewFileSource(path), logger))
	}

	if !cli.Offline {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = odinhttp.NewFetcher(odinhttp.WithTimeout(cli.Timeout))
		}
		src := odinhttp.NewSource(fetcher, cli.URL)
		src.Logger = func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		}
		sources = append(sources, odinslog.NewLoggingSource(src, logger))
	}

	root := rootURL(cli.URL)
	extractor := goquery.NewExtractor(goquery.WithRootURL(root))

	loader := &catalog.Loader{
		Sources:   sources,
		Extractor: odinslog.NewLoggingExtractor(extractor, logger),
		RootURL:   root,
	}
	if !cli.NoCache {
		loader.Snapshots = m.Snapshots
	}
	// A user-supplied file never replaces the cached page.
	if cli.File == "" {
		loader.Pages = fs.NewFileStore(m.PagePath)
	}
	return loader
}

// isCatalogExport reports whether path names a catalog written by export.
func isCatalogExport(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

// rootURL returns the scheme and host of the devices page, which prefix the
// relative links in the table.
func rootURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return odin.RootURL
	}
	return u.Scheme + "://" + u.Host
}

func defaultDBPath() string {
	path, err := xdg.DataFile(filepath.Join("odin", "odin.db"))
	if err != nil {
		return "odin.db"
	}
	return path
}

func defaultPagePath() string {
	path, err := xdg.CacheFile(filepath.Join("odin", "devices.html"))
	if err != nil {
		return "devices.html"
	}
	return path
}
