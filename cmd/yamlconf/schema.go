package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/yamlconf/configtree"
	"go.jacobcolvin.com/yamlconf/treeschema"
)

func newSchemaCmd(a *app) *cobra.Command {
	cfg := treeschema.NewConfig()

	cmd := &cobra.Command{
		Use:   "schema <file> [file ...]",
		Short: "Generate JSON Schema from YAML files",
		Long: `Generate a JSON Schema (Draft 7) describing the given YAML files. Types are
inferred from the values and comments become property descriptions. When
several files are given, their schemas are merged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trees := make([]*configtree.Tree, 0, len(args))

			for _, file := range args {
				doc, err := a.open(file, cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}

				trees = append(trees, doc.Tree)
			}

			schema := cfg.NewGenerator().Generate(trees...)

			if cfg.Output == "" || cfg.Output == "-" {
				return treeschema.Write(cmd.OutOrStdout(), schema, cfg.Indent)
			}

			var buf bytes.Buffer

			err := treeschema.Write(&buf, schema, cfg.Indent)
			if err != nil {
				return err
			}

			err = os.WriteFile(cfg.Output, buf.Bytes(), 0o644) //nolint:gosec // Schemas are not secret.
			if err != nil {
				return fmt.Errorf("%w: %w", treeschema.ErrWriteOutput, err)
			}

			a.logger.Info("wrote schema", slog.String("file", cfg.Output))

			return nil
		},
	}

	cfg.RegisterFlags(cmd.Flags())

	completionErr := cfg.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}
