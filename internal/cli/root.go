package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/generator"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// app carries state shared between the root command and its subcommands.
type app struct {
	v   *viper.Viper
	cfg config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRootCmd builds the passgen command tree.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "passgen",
		Short:         "Generate random passwords",
		Long:          `passgen builds passwords from selectable character classes, from the command line, an interactive prompt or an HTTP API`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg
			slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("source", "math", "random source (math, crypto)")
	pf.String("clipboard", "", "clipboard backend (system, memory, none)")
	a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	a.v.BindPFlag("random_source", pf.Lookup("source"))
	a.v.BindPFlag("clipboard", pf.Lookup("clipboard"))

	root.AddCommand(newGenerateCmd(a), newInteractiveCmd(a), newServeCmd(a))
	return root
}

// source resolves the configured random source.
func (a *app) source() (generator.Source, error) {
	src, err := generator.SourceByName(a.cfg.RandomSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, a.cfg.RandomSource)
	}
	return src, nil
}

// clipboard resolves the configured clipboard, using fallback when none is set.
func (a *app) clipboard(fallback string) (clipboard.Clipboard, error) {
	name := a.cfg.Clipboard
	if name == "" {
		name = fallback
	}
	cb, err := clipboard.ByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, name)
	}
	return cb, nil
}

// reportedError wraps an error the user has already seen as a notification.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Reported reports whether err has already been shown to the user and only
// needs to set the exit status.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
