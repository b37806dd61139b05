package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/notify"
	"github.com/vaultpass/passgen/internal/service"
)

type generateFlags struct {
	length  lengthValue
	classes map[generator.Class]*bool
	count   int
	copy    bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{classes: make(map[generator.Class]*bool)}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print one or more passwords",
		Long: `Print passwords built from the selected character classes.
Lengths outside 8-32 are clamped. Disable a class with e.g. --symbols=false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, f)
		},
	}

	fs := cmd.Flags()
	f.length = generator.DefaultLength
	fs.VarP(&f.length, "length", "l", "password length (8-32)")
	f.classes[generator.Uppercase] = fs.Bool("upper", true, "include uppercase letters")
	f.classes[generator.Lowercase] = fs.Bool("lower", true, "include lowercase letters")
	f.classes[generator.Digits] = fs.Bool("digits", true, "include digits")
	f.classes[generator.Symbols] = fs.Bool("symbols", true, "include symbols")
	fs.IntVarP(&f.count, "count", "c", 1, "number of passwords to print")
	fs.BoolVar(&f.copy, "copy", false, "copy the last password to the clipboard")

	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, f *generateFlags) error {
	if f.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", f.count)
	}

	src, err := a.source()
	if err != nil {
		return err
	}
	cb, err := a.clipboard("system")
	if err != nil {
		return err
	}

	svc := service.NewGeneratorService(src, cb, notify.NewWriter(cmd.ErrOrStderr()))
	svc.SetLength(int(f.length))
	for class, enabled := range f.classes {
		svc.SetFlag(class, *enabled)
	}

	for i := 0; i < f.count; i++ {
		password, err := svc.Generate(cmd.Context())
		if err != nil {
			if errors.Is(err, generator.ErrNoCharacterClassSelected) {
				return reportedError{err}
			}
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), password)
	}

	if f.copy {
		if err := svc.CopyToClipboard(cmd.Context()); err != nil {
			return reportedError{err}
		}
	}
	return nil
}

// lengthValue is a --length flag that clamps instead of rejecting values
// outside the range of int.
type lengthValue int

func (l *lengthValue) Set(s string) error {
	n, err := generator.ParseLength(s)
	if err != nil {
		return err
	}
	*l = lengthValue(n)
	return nil
}

func (l *lengthValue) String() string { return strconv.Itoa(int(*l)) }

func (l *lengthValue) Type() string { return "int" }
