package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/internal/config"
	"github.com/emavok/paranoia/internal/logging"
)

// cli holds the state shared by all subcommands.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	strict   bool
	maxDepth int
	output   string
	logLevel string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, logger: logging.Discard()}

	root := &cobra.Command{
		Use:           "paranoia",
		Short:         "Validate data against paranoia schemas",
		Long:          "Validates JSON and YAML data files against schema files written in JSON, YAML or TOML.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.BoolVar(&c.strict, "strict", false, "reject object schemas without properties and array schemas without items (env PARANOIA_STRICT)")
	pf.IntVar(&c.maxDepth, "max-depth", 0, "maximum schema nesting depth, 0 for unlimited (env PARANOIA_MAX_DEPTH)")
	pf.StringVarP(&c.output, "output", "o", config.OutputText, "output format: text or json (env PARANOIA_OUTPUT)")
	pf.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error (env PARANOIA_LOG_LEVEL)")

	root.AddCommand(newValidateCmd(c), newCheckCmd(c), newVersionCmd(c))
	return root
}

// setup loads the environment defaults and applies them to every flag not set
// on the command line.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("strict") {
		c.strict = cfg.Strict
	}
	if !flags.Changed("max-depth") {
		c.maxDepth = cfg.MaxDepth
	}
	if !flags.Changed("output") {
		c.output = cfg.Output
	}
	if !flags.Changed("log-level") {
		c.logLevel = cfg.LogLevel
	}

	if c.output != config.OutputText && c.output != config.OutputJSON {
		return fmt.Errorf("invalid output format %q (valid: %s, %s)", c.output, config.OutputText, config.OutputJSON)
	}
	if c.maxDepth < 0 {
		return fmt.Errorf("--max-depth must not be negative, got %d", c.maxDepth)
	}
	level, err := logging.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}
	opts := append(cfg.LoggerOptions(), logging.WithLevel(level), logging.WithOutput(c.stderr))
	c.logger = logging.New(opts...)
	return nil
}

func (c *cli) options() []paranoia.Option {
	return []paranoia.Option{paranoia.WithStrict(c.strict), paranoia.WithMaxDepth(c.maxDepth)}
}

func (c *cli) jsonOutput() bool { return c.output == config.OutputJSON }

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(c.stdout, "paranoia %s\n", version)
		},
	}
}
