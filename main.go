package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/engine"
	"github.com/olivier-w/conveyor/internal/logging"
	"github.com/olivier-w/conveyor/internal/pool"
	"github.com/olivier-w/conveyor/internal/ui"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	poolPath   string
	password   string
	logPath    string
	logLevel   string
	columns    int
	seed       int64
	about      bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:           "conveyor [pool]",
		Short:         "Scroll a pool of media across coupled columns in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.poolPath = args[0]
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = time.Now().UnixNano()
			}
			return run(cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVarP(&opts.poolPath, "pool", "p", "", "pool file, playlist or directory (default: current directory)")
	f.IntVar(&opts.columns, "columns", 0, "number of columns")
	f.StringVar(&opts.password, "password", "", "require this password before showing the conveyor")
	f.StringVar(&opts.logPath, "log", "", "write debug logs to this file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	f.Int64Var(&opts.seed, "seed", 0, "shuffle seed (default: random)")
	f.BoolVar(&opts.about, "about", false, "open the about drawer at startup")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("columns") {
		cfg.Layout.Columns = opts.columns
	}
	if cmd.Flags().Changed("password") {
		cfg.Gate.Password = opts.password
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(cfg config.Config, opts options) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal")
	}

	log, closer, err := logging.Setup(opts.logPath, opts.logLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	model, err := buildConveyor(cfg, opts.poolPath, opts.seed, log)
	if err != nil {
		log.Error("startup failed", "err", err)
		return err
	}
	if opts.about {
		model = model.WithDrawer(engine.DrawerAbout)
	}

	var root tea.Model = model
	if cfg.Gate.Password != "" {
		root = newGateModel(model, cfg.Gate.Password)
	}

	p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// buildConveyor loads the pool, shuffles it into columns and wraps the
// columns in a conveyor view.
func buildConveyor(cfg config.Config, path string, seed int64, log *slog.Logger) (ui.Model, error) {
	if path == "" {
		path = "."
	}
	sources, err := pool.Load(path)
	if err != nil {
		return ui.Model{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	p, err := pool.Build(sources, rng, time.Now())
	if err != nil {
		return ui.Model{}, fmt.Errorf("%s: %w", path, err)
	}
	columns := p.Distribute(cfg.Layout.Columns, cfg.Layout.MinPerColumn, rng)
	log.Info("pool loaded", "path", path, "items", p.Len(), "columns", len(columns), "seed", seed)

	return ui.New(columns, cfg, log, rng)
}
