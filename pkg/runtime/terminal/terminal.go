package terminal

import (
	"errors"
	"io"
	"os"

	"github.com/de-tools/statement-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/statement-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/statement-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	output    io.Writer
	logOutput io.Writer
	session   *commands.Session
	rootCmd   *cobra.Command

	configPath string
	envFile    string
	sourceKind string
	logLevel   string
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// LogOutput receives structured logs, stderr by default
	LogOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}

	cli := &CLI{
		output:    opts.Output,
		logOutput: opts.LogOutput,
		session:   &commands.Session{},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	err := cli.rootCmd.Execute()
	return errors.Join(err, cli.teardown())
}

// SetArgs overrides os.Args, mostly for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "statements",
		Short:             "Financial statement generator",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}
	cmd.SetOut(cli.output)

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&cli.envFile, "env-file", ".env", "Environment file loaded before the configuration")
	cmd.PersistentFlags().StringVar(&cli.sourceKind, "source", "", "Line item source (reference, file, sql), overrides the configuration")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Log level, overrides the configuration")

	cmd.AddCommand(commands.NewGenerateCmd(cli.session))
	cmd.AddCommand(commands.NewTypesCmd(cli.session))
	cmd.AddCommand(commands.NewSeedCmd(cli.session))
	cmd.AddCommand(commands.NewPeriodsCmd(cli.session))
	cmd.AddCommand(commands.NewAccountsCmd(cli.session))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	if err := bootstrap.LoadEnv(cli.envFile); err != nil {
		return err
	}

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}
	if cli.sourceKind != "" {
		cfg.Source.Kind = cli.sourceKind
	}
	if cli.logLevel != "" {
		cfg.Log.Level = cli.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := bootstrap.Logger(cfg.Log, cli.logOutput)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	rt, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	cli.session.Runtime = rt
	return nil
}

func (cli *CLI) teardown() error {
	if cli.session.Runtime == nil {
		return nil
	}
	err := cli.session.Runtime.Close()
	cli.session.Runtime = nil
	return err
}
