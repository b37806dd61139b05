package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/notify"
	"github.com/vaultpass/passgen/internal/service"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i", "repl"},
		Short:   "Configure and generate passwords at a prompt",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source()
			if err != nil {
				return err
			}
			cb, err := a.clipboard("system")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			svc := service.NewGeneratorService(src, cb, notify.NewWriter(out))
			return runREPL(cmd.Context(), cmd.InOrStdin(), out, svc)
		},
	}
}

// runREPL reads one command per line until EOF or "exit". Each command runs to
// completion before the next line is read.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, svc *service.GeneratorService) error {
	fmt.Fprintln(out, "Password Generator (type 'help' for commands, 'exit' to quit)")
	printState(out, svc)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "passgen> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if done := handleREPLCommand(ctx, out, svc, line); done {
			return nil
		}
	}
}

// handleREPLCommand dispatches a single line of input. It returns true when the user wants to quit.
func handleREPLCommand(ctx context.Context, out io.Writer, svc *service.GeneratorService, line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true

	case "help", "h", "?":
		printREPLHelp(out)

	case "show", "s":
		printState(out, svc)

	case "length", "len", "l":
		if len(args) != 1 {
			fmt.Fprintln(out, "usage: length N")
			return false
		}
		n, err := generator.ParseLength(args[0])
		if err != nil {
			fmt.Fprintf(out, "invalid length %q\n", args[0])
			return false
		}
		fmt.Fprintf(out, "length set to %d\n", svc.SetLength(n))

	case "generate", "gen", "g":
		// Failures are already reported through the notifier.
		if password, err := svc.Generate(ctx); err == nil {
			fmt.Fprintln(out, password)
		}

	case "copy", "c":
		svc.CopyToClipboard(ctx)

	default:
		class, err := generator.ParseClass(cmd)
		if err != nil {
			fmt.Fprintf(out, "unknown command %q, type 'help'\n", cmd)
			return false
		}
		enabled, ok := parseToggle(args)
		if !ok {
			fmt.Fprintf(out, "usage: %s on|off\n", class)
			return false
		}
		svc.SetFlag(class, enabled)
		fmt.Fprintf(out, "%s %s\n", class, onOff(enabled))
	}

	return false
}

func parseToggle(args []string) (bool, bool) {
	if len(args) != 1 {
		return false, false
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes", "y", "true", "1":
		return true, true
	case "off", "no", "n", "false", "0":
		return false, true
	default:
		return false, false
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printState(out io.Writer, svc *service.GeneratorService) {
	opts := svc.Options()
	fmt.Fprintf(out, "length %d |", opts.Length)
	for _, c := range generator.AllClasses {
		fmt.Fprintf(out, " %s %s", c, onOff(opts.Enabled(c)))
	}
	fmt.Fprintln(out)
	if p := svc.Password(); p != "" {
		fmt.Fprintf(out, "password %s\n", p)
	}
}

func printREPLHelp(out io.Writer) {
	fmt.Fprint(out, `Commands:
  length N                 set the length (clamped to 8-32)
  upper|lower|digits|symbols on|off
                           toggle a character class
  generate, g              generate a new password
  copy, c                  copy the current password to the clipboard
  show                     print the configuration and current password
  help                     show this help
  exit                     quit
`)
}
