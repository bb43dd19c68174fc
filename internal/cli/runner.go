package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/nottodo/internal/config"
	"github.com/idilsaglam/nottodo/internal/itemstore"
	"github.com/idilsaglam/nottodo/internal/logging"
	"github.com/idilsaglam/nottodo/internal/store"
	"github.com/idilsaglam/nottodo/internal/ui"
)

// Options let callers (mostly tests) swap out the process-wide pieces.
type Options struct {
	Backend store.Backend   // used instead of the configured backend when set
	Clock   clockwork.Clock // defaults to the real clock
	Stdout  io.Writer
	Stderr  io.Writer
}

// exitError carries a process exit code (1 runtime, 2 usage).
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, a...)}
}

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}

	a := &app{opt: opt, log: zap.NewNop()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err := root.ExecuteContext(ctx)
	_ = a.log.Sync()
	if err == nil {
		return 0
	}

	ui.Fail(opt.Stderr, err.Error())
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.code == 2 {
			fmt.Fprintln(opt.Stderr, ui.Current().Muted.Render("Hint: run `nottodo help` for usage"))
		}
		return ee.code
	}
	return 1
}

type app struct {
	opt Options
	cfg *config.Config
	log *zap.Logger

	flags struct {
		store, path, theme string
		verbose            bool
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nottodo",
		Short: "nottodo - a tiny NOT to do list",
		Long: `nottodo keeps a short list of things you intend NOT to do.
At most 3 items fit; delete one to make room.

Run without arguments to open the interactive list.`,
		Example: `  nottodo add "Doom scroll"
  nottodo ls
  nottodo ls --format json
  nottodo rm 1760851805123`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.store, "store", "", "storage backend: json, sqlite, redis, memory (default $NOTTODO_STORE or json)")
	pf.StringVar(&a.flags.path, "path", "", "data file for json/sqlite stores (default $NOTTODO_PATH or ~/.nottodo/...)")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: classic, neon, mono (default $NOTTODO_THEME or classic)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		a.addCmd(),
		a.listCmd(),
		a.removeCmd(),
		a.tuiCmd(),
	)
	return root
}

// setup resolves config (env, then flags), theme and logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.flags.store != "" {
		cfg.Store = a.flags.store
	}
	if a.flags.path != "" {
		cfg.Path = a.flags.path
	}
	if a.flags.theme != "" {
		cfg.Theme = a.flags.theme
	}
	if a.flags.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return &exitError{code: 2, err: err}
	}
	a.cfg = cfg
	ui.SetTheme(cfg.Theme)

	build := logging.New
	if isTUI(cmd) {
		build = logging.ForTUI
	}
	log, err := build(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func isTUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// open connects the backend and loads the list. The returned func releases the backend.
func (a *app) open(ctx context.Context) (*itemstore.Store, func(), error) {
	backend := a.opt.Backend
	if backend == nil {
		b, err := openBackend(ctx, a.cfg)
		if err != nil {
			return nil, nil, err
		}
		backend = b
	}
	release := func() {
		if err := backend.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}

	opts := []itemstore.Option{
		itemstore.WithKey(a.cfg.StorageKey()),
		itemstore.WithLogger(a.log),
	}
	if a.opt.Clock != nil {
		opts = append(opts, itemstore.WithClock(a.opt.Clock))
	}
	s, err := itemstore.Open(ctx, backend, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return s, release, nil
}
