package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/yamlconf/configtree"
	"go.jacobcolvin.com/yamlconf/yamldoc"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

func newGetCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get <file> [path]",
		Short: "Print the value at a key path",
		Long: `Print the value at a dotted key path, or the whole document when no path is
given. A file of "-" reads from stdin.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			v := doc.Root()

			if len(args) == 2 {
				if !doc.Has(args[1]) {
					return fmt.Errorf("%w: %s", errPathNotFound, args[1])
				}

				v = doc.Get(args[1])
			}

			return writeValue(cmd.OutOrStdout(), v, output, a.options())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputYAML,
		fmt.Sprintf("output format, one of: %s", []string{outputYAML, outputJSON}))

	registerFixedCompletions(cmd, "output", []string{outputYAML, outputJSON})

	return cmd
}

func writeValue(w io.Writer, v *configtree.Value, output string, opts []yamldoc.Option) error {
	var (
		out []byte
		err error
	)

	switch strings.ToLower(output) {
	case outputYAML:
		out, err = yamldoc.MarshalValue(v, opts...)
	case outputJSON:
		out, err = json.MarshalIndent(v.Interface(), "", "  ")
		out = append(out, '\n')
	default:
		return fmt.Errorf("unknown output format %q", output)
	}

	if err != nil {
		return err
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", yamldoc.ErrWrite, err)
	}

	return nil
}

func newSetCmd(a *app) *cobra.Command {
	var (
		styleName string
		comments  []string
		inline    string
	)

	cmd := &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Set the value at a key path",
		Long: `Set the value at a dotted key path and save the file. The value is read as
YAML, so "8080" is a number and "[a, b]" is a list. Missing parents are
created, as is the file itself. Comments already attached to the key are
kept unless replaced with --comment or --inline.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, path := args[0], args[1]

			doc, err := a.openOrNew(file)
			if err != nil {
				return err
			}

			value, err := yamldoc.ParseValue(args[2])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("style") {
				style, parseErr := configtree.ParseStyle(styleName)
				if parseErr != nil {
					return parseErr
				}

				if _, ok := value.Text(); !ok {
					value = configtree.String(args[2], style)
				}

				value.SetStyle(style)
			}

			if doc.Has(path) {
				old := doc.Get(path)
				value.Comments = old.Comments
				value.Inline = old.Inline
			}

			if cmd.Flags().Changed("comment") {
				value.Comments = comments
			}

			if cmd.Flags().Changed("inline") {
				value.Inline = nil
				if inline != "" {
					value.Inline = []string{inline}
				}
			}

			err = doc.Set(path, value)
			if err != nil {
				return err
			}

			a.logger.Info("set value", slog.String("file", file), slog.String("path", path))

			return doc.Save(file)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&styleName, "style", "",
		fmt.Sprintf("store the value as a string in this style, one of: %s", configtree.GetAllStyleStrings()))
	flags.StringArrayVar(&comments, "comment", nil,
		"leading comment line, repeat for several lines")
	flags.StringVar(&inline, "inline", "", "inline comment, empty to remove")

	registerFixedCompletions(cmd, "style", configtree.GetAllStyleStrings())

	return cmd
}

func newUnsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <file> <path>",
		Short: "Remove the key at a path",
		Long: `Remove the key at a dotted path and save the file. Parents that become empty
are kept.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			file, path := args[0], args[1]

			doc, err := yamldoc.ReadFile(file, a.options()...)
			if err != nil {
				return err
			}

			if !doc.Has(path) {
				return fmt.Errorf("%w: %s", errPathNotFound, path)
			}

			err = doc.Set(path, nil)
			if err != nil {
				return err
			}

			a.logger.Info("removed key", slog.String("file", file), slog.String("path", path))

			return doc.Save(file)
		},
	}
}

func newKeysCmd(a *app) *cobra.Command {
	var deep bool

	cmd := &cobra.Command{
		Use:   "keys <file> [path]",
		Short: "List the keys of a mapping",
		Long: `List the keys of the document, or of the mapping at a dotted path. With
--deep, nested keys are listed as dotted paths.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.open(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			tree := doc.Tree

			if len(args) == 2 {
				sub, ok := doc.Sub(args[1])
				if !ok {
					return fmt.Errorf("%w: no mapping at %s", errPathNotFound, args[1])
				}

				tree = sub
			}

			keys := tree.Keys(deep)
			if len(keys) == 0 {
				return nil
			}

			_, err = io.WriteString(cmd.OutOrStdout(), strings.Join(keys, "\n")+"\n")
			if err != nil {
				return fmt.Errorf("%w: %w", yamldoc.ErrWrite, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&deep, "deep", false, "include nested keys as dotted paths")

	return cmd
}
