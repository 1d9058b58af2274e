package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/odin"
	"github.com/fwojciec/odin/catalog"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Snapshots odin.SnapshotService
	Loader    *catalog.Loader
	Renderer  odin.Renderer

	// PagePath is where fetched pages are cached.
	PagePath string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	File    string        `short:"f" env:"ODIN_FILE" help:"Read the device table from a local HTML file or an exported .xml catalog"`
	URL     string        `env:"ODIN_URL" default:"${devices_url}" help:"Table of hardware URL"`
	DB      string        `name:"db" env:"ODIN_DB" help:"Snapshot database path"`
	Timeout time.Duration `env:"ODIN_TIMEOUT" default:"10s" help:"HTTP request timeout"`
	Format  string        `enum:"text,markdown,json,xml" default:"text" help:"Output format (text, markdown, json, xml)"`
	Offline bool          `help:"Never download the page"`
	NoCache bool          `name:"no-cache" help:"Do not read or write snapshots"`
	Verbose bool          `short:"v" help:"Log progress to stderr"`

	Brands    BrandsCmd    `cmd:"" help:"List all brands"`
	Models    ModelsCmd    `cmd:"" help:"List the models of a brand"`
	Fetch     FetchCmd     `cmd:"" help:"Download the device table and store a snapshot"`
	Snapshots SnapshotsCmd `cmd:"" help:"List stored snapshots"`
	Forget    ForgetCmd    `cmd:"" help:"Delete a stored snapshot"`
	Export    ExportCmd    `cmd:"" help:"Write the full catalog as XML, readable again with --file"`
}

// BrandsCmd is the "brands" subcommand.
type BrandsCmd struct{}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct {
	Brand string `arg:"" optional:"" help:"Brand name (case-insensitive)"`
	All   bool   `short:"a" help:"List the models of every brand"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct{}

// SnapshotsCmd is the "snapshots" subcommand.
type SnapshotsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of snapshots to list"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	ID string `arg:"" help:"Snapshot ID"`
}
