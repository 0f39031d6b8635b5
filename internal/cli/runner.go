package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/atlas/internal/config"
	"github.com/Makepad-fr/atlas/internal/countries"
	"github.com/Makepad-fr/atlas/internal/filter"
	"github.com/Makepad-fr/atlas/internal/logging"
	"github.com/Makepad-fr/atlas/internal/model"
	"github.com/Makepad-fr/atlas/internal/store/jsonstore"
	"github.com/Makepad-fr/atlas/internal/tui"
	"github.com/Makepad-fr/atlas/internal/ui"
)

// Options tune output behavior from root flags.
type Options struct {
	ConfigPath string
	Theme      string
	Locale     string
	Source     string
	Verbose    bool
	Color      bool
	NoColor    bool
}

// usageError marks errors that exit with code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{out: stdout, log: zap.NewNop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.FailTo(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Hint: run `atlas --help` for usage"))
		return 2
	}
	return 1
}

// app carries what the persistent pre-run builds for every subcommand.
type app struct {
	opts Options
	cfg  *config.Config

	log    *zap.Logger
	loader *countries.Loader
	theme  ui.Theme
	pop    ui.PopulationFormatter

	out io.Writer
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atlas",
		Short: "atlas - browse the countries of the world",
		Long: `atlas fetches the public REST Countries dataset once and shows every
country as a card. Type to search by name, press tab to filter by region,
ctrl+t to switch between dark and light mode.

Run without arguments to start the interactive viewer.`,
		Args:              noArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(!cmd.HasParent()) },
		PersistentPostRun: func(cmd *cobra.Command, args []string) { _ = a.log.Sync() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(cmd.Context(), a.loader, tui.Options{
				Theme:      a.theme,
				Population: a.pop,
				Logger:     a.log,
			})
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.ConfigPath, "config", config.DefaultPath(), "config file (YAML)")
	pf.StringVar(&a.opts.Theme, "theme", "", "display mode: dark or light")
	pf.StringVar(&a.opts.Locale, "locale", "", "locale for number grouping, e.g. de-DE")
	pf.StringVar(&a.opts.Source, "source", "", "read a saved provider response instead of the network")
	pf.BoolVarP(&a.opts.Verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.opts.Color, "color", false, "force colors even when not writing to a terminal")
	pf.BoolVar(&a.opts.NoColor, "no-color", false, "disable colors")

	root.AddCommand(a.listCmd(), a.regionsCmd(), a.exportCmd())
	return root
}

// setup builds config, theme and loader. interactive is true for the viewer,
// which keeps logs off the terminal unless a log file is configured.
func (a *app) setup(interactive bool) error {
	cfg, err := config.Load(a.opts.ConfigPath)
	if err != nil {
		return err
	}
	// flags win over file and env; validate only after they are applied
	if a.opts.Theme != "" {
		cfg.UI.Theme = a.opts.Theme
	}
	if a.opts.Locale != "" {
		cfg.UI.Locale = a.opts.Locale
	}
	if a.opts.Source != "" {
		cfg.API.Source = a.opts.Source
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	ui.SetColorForcing(a.opts.Color, a.opts.NoColor)
	ui.SetTheme(cfg.UI.Theme)
	a.theme = ui.Current()
	a.pop = ui.NewPopulationFormatter(ui.LocaleTag(cfg.UI.Locale))

	if a.log, err = logging.New(cfg.Logging, a.opts.Verbose, interactive); err != nil {
		return err
	}

	timeout, _ := cfg.FetchTimeout()
	var src countries.Source
	if cfg.API.Source != "" {
		src = countries.FileSource{Path: cfg.API.Source}
	} else {
		src = countries.NewClient(cfg.API.BaseURL, timeout)
	}
	a.loader = countries.NewLoader(src, a.log)
	a.log.Debug("configured",
		zap.String("theme", cfg.UI.Theme),
		zap.Stringer("locale", a.pop.Locale()),
		zap.String("source", cfg.API.Source),
		zap.String("base_url", cfg.API.BaseURL),
	)
	return nil
}

// -------------- subcommands ----------------

func (a *app) listCmd() *cobra.Command {
	var q filter.Query
	var width int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the matching countries as cards",
		Example: `  atlas list
  atlas list --search united --region Asia
  atlas list --region Europe --locale de-DE`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRegion(q.Region); err != nil {
				return err
			}
			return a.doList(cmd.Context(), q, width)
		},
	}
	addQueryFlags(cmd, &q)
	cmd.Flags().IntVar(&width, "width", 80, "output width in columns")
	return cmd
}

func (a *app) regionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the values accepted by --region",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, r := range model.Regions {
				fmt.Fprintf(a.out, "%-10s %s\n", r, a.theme.Muted.Render(model.RegionLabel(r)))
			}
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var q filter.Query
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matching countries as JSON",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkRegion(q.Region); err != nil {
				return err
			}
			return a.doExport(cmd.Context(), q, out)
		},
	}
	addQueryFlags(cmd, &q)
	cmd.Flags().StringVarP(&out, "out", "o", jsonstore.DefaultFileName, "output file")
	return cmd
}

// -------------- subcommand impls ----------------

func (a *app) doList(ctx context.Context, q filter.Query, width int) error {
	res := a.loader.Load(ctx)
	v := filter.Evaluate(res, q)
	t := a.theme

	header := fmt.Sprintf("%s  %s %d  %s %d",
		t.Title.Render("Where in the world?"),
		t.Accent.Render("Showing"), len(v.Countries),
		t.Muted.Render("of"), v.Total,
	)
	lines := []string{
		header,
		t.Muted.Render(ui.ProgressBar(len(v.Countries), v.Total, 28)),
		"",
		fmt.Sprintf("%s %s   %s",
			t.Label.Render("Search:"), quoteOrAny(q.Term),
			t.Label.Render("Region: ")+model.RegionLabel(q.Region)),
	}
	ui.Panel(a.out, lines)

	if v.Outcome == filter.NoResults {
		fmt.Fprintln(a.out, ui.NoResults(t))
		if note := ui.Unavailable(t, v.Failure); note != "" {
			fmt.Fprintln(a.out, note)
		}
	} else {
		cards := make([]string, 0, len(v.Countries))
		for _, c := range v.Countries {
			cards = append(cards, ui.Card(t, a.pop, c))
		}
		fmt.Fprintln(a.out, ui.Grid(cards, width))
	}

	if res.State == countries.StateFailed {
		return res.Err
	}
	return nil
}

func (a *app) doExport(ctx context.Context, q filter.Query, path string) error {
	res := a.loader.Load(ctx)
	if res.State == countries.StateFailed {
		return res.Err
	}
	v := filter.Evaluate(res, q)
	if err := jsonstore.Save(path, v.Countries); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	a.log.Info("exported countries", zap.String("path", path), zap.Int("count", len(v.Countries)))
	ui.OKTo(a.out, fmt.Sprintf("exported %d of %d countries to %s", len(v.Countries), v.Total, path))
	return nil
}

// -------------- helpers --------------

func addQueryFlags(cmd *cobra.Command, q *filter.Query) {
	cmd.Flags().StringVarP(&q.Term, "search", "s", "", "case-insensitive name search")
	cmd.Flags().StringVarP(&q.Region, "region", "r", model.RegionAll, "region filter (see `atlas regions`)")
}

func checkRegion(r string) error {
	if model.ValidRegion(r) {
		return nil
	}
	return usagef("unknown region %q: want one of %s", r, strings.Join(model.Regions, ", "))
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unknown command %q for %q", args[0], cmd.CommandPath())
	}
	return nil
}

func quoteOrAny(term string) string {
	if term == "" {
		return "(any)"
	}
	return fmt.Sprintf("%q", term)
}
