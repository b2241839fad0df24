// Command spacelens inspects the schema of a SpacetimeDB instance:
// tables, structs, enums, and built-in special types, rendered as a
// colored tree or as JSON, optionally narrowed by filters or a search
// pattern.
package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spacelens/spacelens/internal/client"
	"github.com/spacelens/spacelens/internal/config"
	"github.com/spacelens/spacelens/internal/errs"
	"github.com/spacelens/spacelens/internal/logger"
	"github.com/spacelens/spacelens/internal/render"
	"github.com/spacelens/spacelens/internal/sats"
	"github.com/spacelens/spacelens/internal/schema"
)

// Exit codes: 1 is a fatal fetch/parse/build error, exitNoMatches means
// the run succeeded but the filter or search matched nothing.
const (
	exitFatal     = 1
	exitNoMatches = 3
)

type options struct {
	db       string
	server   string
	version  string
	cloud    bool
	format   string
	table    string
	typeName string
	enumName string
	search   string
	logLevel string
	noColor  bool
}

func main() {
	var opts options
	exitCode := 0

	cmd := &cobra.Command{
		Use:           "spacelens",
		Short:         "SpacetimeDB schema inspection tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(cmd.Context(), opts)
			exitCode = code
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.db, "db", "", "database name")
	flags.StringVar(&opts.server, "server", "local", "server URL or nickname")
	flags.StringVar(&opts.version, "schema-version", "", "schema version to fetch (default 9)")
	flags.BoolVar(&opts.cloud, "cloud", false, "use SpacetimeDB cloud")
	flags.StringVar(&opts.format, "format", "text", "output format: text|json|raw")
	flags.StringVar(&opts.table, "table", "", "show only the named table")
	flags.StringVar(&opts.typeName, "type", "", "show only the named struct")
	flags.StringVar(&opts.enumName, "enum", "", "show only the named enum")
	flags.StringVarP(&opts.search, "search", "s", "", "case-insensitive substring search over names and types")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cobra.CheckErr(cmd.MarkFlagRequired("db"))
	cmd.MarkFlagsMutuallyExclusive("server", "cloud")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		logger.New(nil).Error(err.Error())
		os.Exit(exitFatal)
	}
	os.Exit(exitCode)
}

func run(ctx context.Context, opts options) (int, error) {
	log := logger.New(&logger.Config{Level: opts.logLevel, Format: "console", Output: os.Stderr})

	if opts.noColor {
		color.NoColor = true
	}

	server := opts.server
	if opts.cloud {
		server = "cloud"
	}
	baseURL, err := config.ResolveServer(server)
	if err != nil {
		return exitFatal, err
	}

	cfg := client.DefaultConfig(baseURL)
	if opts.version != "" {
		cfg.SchemaVersion = opts.version
	}
	c := client.New(cfg)

	log.Infof("fetching schema for %q from %s", opts.db, c.BaseURL())
	payload, err := c.FetchSchema(ctx, opts.db)
	if err != nil {
		return exitFatal, err
	}
	log.Debugf("fetched %d bytes", len(payload))

	if opts.format == "raw" {
		return 0, render.Raw(os.Stdout, payload)
	}

	raw, err := sats.Decode(payload)
	if err != nil {
		return exitFatal, err
	}
	model, err := schema.Build(raw, log)
	if err != nil {
		return exitFatal, err
	}

	sel := schema.Selection{Table: opts.table, Type: opts.typeName, Enum: opts.enumName}
	if !sel.Empty() {
		model = schema.Filter(model, sel)
	}
	if opts.search != "" {
		model = schema.Search(model, opts.search)
	}

	code := 0
	if model.Empty() {
		code = exitNoMatches
	}

	switch opts.format {
	case "text":
		return code, render.Text(os.Stdout, model, render.DefaultPalette())
	case "json":
		return code, render.JSON(os.Stdout, model)
	default:
		return exitFatal, errs.Newf(errs.ErrKindInvalidInput, "unknown format %q", opts.format)
	}
}
