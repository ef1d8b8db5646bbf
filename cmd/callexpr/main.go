// Command callexpr tokenizes and parses call expression programs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jcgregorio/slog"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/xiam/callexpr"
	"github.com/xiam/callexpr/internal/logging"
	"github.com/xiam/callexpr/internal/render"
	"github.com/xiam/callexpr/lexer"
)

// flag names
const (
	verboseFlagName = "verbose"
	noColorFlagName = "no-color"
	formatFlagName  = "format"
	exprFlagName    = "expr"
	jobsFlagName    = "jobs"
)

// flags
var (
	verboseFlag = &cli.BoolFlag{
		Name:    verboseFlagName,
		Aliases: []string{"v"},
		Usage:   "write debug logs to stderr",
		EnvVars: []string{"CALLEXPR_VERBOSE"},
	}
	noColorFlag = &cli.BoolFlag{
		Name:    noColorFlagName,
		Usage:   "disable colored diagnostics",
		EnvVars: []string{"NO_COLOR"},
	}
	exprFlag = &cli.StringFlag{
		Name:    exprFlagName,
		Aliases: []string{"e"},
		Usage:   "read the program from `SOURCE` instead of a file",
	}
	jobsFlag = &cli.IntFlag{
		Name:    jobsFlagName,
		Aliases: []string{"j"},
		Value:   4,
		Usage:   "number of files checked in parallel",
		EnvVars: []string{"CALLEXPR_JOBS"},
	}
)

func formatFlag(value string, formats []render.Format) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    formatFlagName,
		Aliases: []string{"f"},
		Value:   value,
		Usage:   fmt.Sprintf("output format, one of: %v", formats),
		EnvVars: []string{"CALLEXPR_FORMAT"},
	}
}

// env holds what every command needs.
type env struct {
	log    slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newEnv(c *cli.Context) *env {
	if c.Bool(noColorFlagName) {
		color.NoColor = true
	}

	log := logging.Nop()
	if c.Bool(verboseFlagName) {
		log = logging.New(os.Stderr, true)
	}

	return &env{
		log:    log,
		stdin:  c.App.Reader,
		stdout: c.App.Writer,
		stderr: c.App.ErrWriter,
	}
}

// errReported is returned once a diagnostic has been written.
var errReported = cli.Exit("", 1)

func newApp() *cli.App {
	return &cli.App{
		Name:  "callexpr",
		Usage: "tokenize and parse call expression programs such as (add 2 (subtract 4 2))",
		Flags: []cli.Flag{
			verboseFlag,
			noColorFlag,
		},
		Commands: []*cli.Command{
			{
				Name:      "tokenize",
				Usage:     "print the tokens of a program",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					exprFlag,
					formatFlag(string(render.FormatText), render.TokenFormats),
				},
				Action: func(c *cli.Context) error {
					e := newEnv(c)
					format, err := render.ParseFormat(c.String(formatFlagName), render.TokenFormats)
					if err != nil {
						return err
					}
					name, src, err := readSource(e, c.String(exprFlagName), c.Args().First())
					if err != nil {
						return err
					}
					return runTokenize(e, name, src, format)
				},
			},
			{
				Name:      "parse",
				Usage:     "print the syntax tree of a program",
				ArgsUsage: "[FILE|-]",
				Flags: []cli.Flag{
					exprFlag,
					formatFlag(string(render.FormatTree), render.TreeFormats),
				},
				Action: func(c *cli.Context) error {
					e := newEnv(c)
					format, err := render.ParseFormat(c.String(formatFlagName), render.TreeFormats)
					if err != nil {
						return err
					}
					name, src, err := readSource(e, c.String(exprFlagName), c.Args().First())
					if err != nil {
						return err
					}
					return runParse(e, name, src, format)
				},
			},
			{
				Name:      "check",
				Usage:     "parse files and report syntax errors",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					jobsFlag,
				},
				Action: func(c *cli.Context) error {
					e := newEnv(c)
					files := c.Args().Slice()
					if len(files) == 0 {
						return cli.Exit("check: no files given", 2)
					}
					merr := runCheck(c.Context, e, files, c.Int(jobsFlagName))
					if merr.ErrorOrNil() != nil {
						return cli.Exit(fmt.Sprintf("%d of %d files failed", len(merr.Errors), len(files)), 1)
					}
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "parse programs interactively",
				Flags: []cli.Flag{
					formatFlag(string(render.FormatTree), render.TreeFormats),
				},
				Action: func(c *cli.Context) error {
					e := newEnv(c)
					format, err := render.ParseFormat(c.String(formatFlagName), render.TreeFormats)
					if err != nil {
						return err
					}
					return runREPL(e, format)
				},
			},
		},
	}
}

// readSource returns the program given inline, or the contents of path, or
// stdin when path is empty or "-".
func readSource(e *env, expr string, path string) (string, []byte, error) {
	if expr != "" {
		return "<expr>", []byte(expr), nil
	}

	if path == "" || path == "-" {
		src, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", nil, errors.Wrap(err, "reading stdin")
		}
		return "<stdin>", src, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, errors.Wrapf(err, "reading %s", path)
	}
	return path, src, nil
}

func runTokenize(e *env, name string, src []byte, format render.Format) error {
	tokens, err := lexer.TokenizeBytes(src, lexer.WithLogger(e.log))
	if err != nil {
		report(e.stderr, name, src, err)
		return errReported
	}
	e.log.Infof("%s: %d tokens", name, len(tokens))
	return render.Tokens(e.stdout, format, tokens)
}

func runParse(e *env, name string, src []byte, format render.Format) error {
	nodes, err := callexpr.Parse(src, callexpr.WithLogger(e.log))
	if err != nil {
		report(e.stderr, name, src, err)
		return errReported
	}
	e.log.Infof("%s: %d top-level nodes", name, len(nodes))
	return render.Tree(e.stdout, format, nodes)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		errorColor.Fprintf(os.Stderr, "callexpr: %v\n", err)
		os.Exit(1)
	}
}
