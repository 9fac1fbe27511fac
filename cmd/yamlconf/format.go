package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/yamlconf/textdiff"
	"go.jacobcolvin.com/yamlconf/yamldoc"
)

func newFmtCmd(a *app) *cobra.Command {
	var diff, check bool

	cmd := &cobra.Command{
		Use:   "fmt <file> [file ...]",
		Short: "Rewrite files in canonical form",
		Long: `Rewrite YAML files the way yamlconf writes them. With --diff, the changes
are printed instead of written. With --check, nothing is written and the
command fails if any file would change. A file of "-" reads from stdin and
writes to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var unformatted []string

			for _, file := range args {
				changed, err := a.format(cmd, file, diff || check, diff)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}

				if changed {
					unformatted = append(unformatted, file)
				}
			}

			if check && len(unformatted) > 0 {
				return fmt.Errorf("%w: %v", errUnformatted, unformatted)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&diff, "diff", "d", false, "print the changes instead of writing them")
	cmd.Flags().BoolVar(&check, "check", false, "fail if any file is not formatted")

	return cmd
}

// format re-renders one file and reports whether its contents change.
func (a *app) format(cmd *cobra.Command, file string, dryRun, showDiff bool) (bool, error) {
	src, err := a.readSource(cmd.InOrStdin(), file)
	if err != nil {
		return false, err
	}

	doc := yamldoc.New(a.options()...)

	err = doc.LoadBytes(src)
	if err != nil {
		return false, err
	}

	out, err := doc.Bytes()
	if err != nil {
		return false, err
	}

	changed := !bytes.Equal(src, out)
	w := cmd.OutOrStdout()

	switch {
	case showDiff:
		lines := textdiff.Lines(string(src), string(out))
		if !textdiff.Changed(lines) {
			return changed, nil
		}

		_, err = fmt.Fprintf(w, "--- %s\n+++ %s\n", file, file)
		if err == nil {
			err = textdiff.Write(w, lines, isTerminal(w))
		}

		if err != nil {
			return false, fmt.Errorf("%w: %w", yamldoc.ErrWrite, err)
		}
	case dryRun:
	case file == "-":
		_, err = w.Write(out)
		if err != nil {
			return false, fmt.Errorf("%w: %w", yamldoc.ErrWrite, err)
		}
	case changed:
		err = doc.Save(file)
		if err != nil {
			return false, err
		}

		a.logger.Info("formatted file", slog.String("file", file))
	default:
		a.logger.Debug("file already formatted", slog.String("file", file))
	}

	return changed, nil
}

func (a *app) readSource(in io.Reader, file string) ([]byte, error) {
	var (
		src []byte
		err error
	)

	if file == "-" {
		src, err = io.ReadAll(in)
	} else {
		src, err = os.ReadFile(file) //nolint:gosec // Reading user-named files is the point.
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", yamldoc.ErrRead, err)
	}

	return src, nil
}
