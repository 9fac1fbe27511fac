// Package main provides the CLI entry point for yamlconf, a tool that reads
// and edits YAML configuration files while keeping their comments and
// formatting.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/yamlconf/log"
	"go.jacobcolvin.com/yamlconf/profile"
	"go.jacobcolvin.com/yamlconf/yamldoc"
)

var (
	errPathNotFound = errors.New("path not found")
	errUnformatted  = errors.New("file is not formatted")
)

func main() {
	a := newApp()

	err := a.execute(a.newRootCmd())
	if err != nil {
		printError(os.Stderr, err, isTerminal(os.Stderr))
		os.Exit(1)
	}
}

// app holds state shared by all subcommands.
type app struct {
	logCfg   *log.Config
	profCfg  *profile.Config
	logger   *slog.Logger
	profiler *profile.Profiler
	indent   int
}

func newApp() *app {
	return &app{
		logCfg:  log.NewConfig(),
		profCfg: profile.NewConfig(),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// execute runs cmd and then stops the profiler, also when cmd failed.
func (a *app) execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if a.profiler != nil {
		err = errors.Join(err, a.profiler.Stop())
	}

	return err
}

func (a *app) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yamlconf",
		Short: "Read and edit YAML configuration files",
		Long: `yamlconf reads and edits YAML configuration files addressed by dotted key
paths. Comments, key order and scalar styles are kept when a file is
written back.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := a.logCfg.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			a.logger = logger
			a.profiler = a.profCfg.NewProfiler(logger)

			return a.profiler.Start()
		},
	}

	flags := rootCmd.PersistentFlags()
	a.logCfg.RegisterFlags(flags)
	a.profCfg.RegisterFlags(flags)
	flags.IntVar(&a.indent, "indent", yamldoc.DefaultIndent, "indentation width of written YAML")

	completionErr := errors.Join(
		a.logCfg.RegisterCompletions(rootCmd),
		a.profCfg.RegisterCompletions(rootCmd),
	)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		newGetCmd(a),
		newSetCmd(a),
		newUnsetCmd(a),
		newKeysCmd(a),
		newFmtCmd(a),
		newSchemaCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) options() []yamldoc.Option {
	return []yamldoc.Option{
		yamldoc.WithLogger(a.logger),
		yamldoc.WithIndent(a.indent),
	}
}

// open loads the document at path. A path of "-" reads from in.
func (a *app) open(path string, in io.Reader) (*yamldoc.Document, error) {
	if path == "-" {
		return yamldoc.Read(in, a.options()...)
	}

	return yamldoc.ReadFile(path, a.options()...)
}

// openOrNew loads the document at path, or returns an empty document if the
// file does not exist yet.
func (a *app) openOrNew(path string) (*yamldoc.Document, error) {
	doc, err := yamldoc.ReadFile(path, a.options()...)
	if errors.Is(err, yamldoc.ErrNotFound) {
		a.logger.Debug("creating new document", slog.String("file", path))

		return yamldoc.New(a.options()...), nil
	}

	return doc, err
}

func registerFixedCompletions(cmd *cobra.Command, flag string, values []string) {
	err := cmd.RegisterFlagCompletionFunc(flag,
		cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		fmt.Fprintf(os.Stderr, "register %s completion: %v\n", flag, err)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// printError writes err to w. YAML syntax errors include an excerpt of the
// offending source.
func printError(w io.Writer, err error, colored bool) {
	var syntaxErr *yamldoc.SyntaxError
	if errors.As(err, &syntaxErr) {
		fmt.Fprintf(w, "%v\n%s\n", err, syntaxErr.Pretty(colored))

		return
	}

	fmt.Fprintf(w, "%v\n", err)
}
