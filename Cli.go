package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/reaandrew/findingsexport/config"
	"github.com/reaandrew/findingsexport/core"
	"github.com/reaandrew/findingsexport/utils"
	"github.com/spf13/cobra"
)

// Cli represents the command-line interface
type Cli struct {
	configPath string
	sink       string
	output     string
	sheetId    string
	worksheet  string
	writeMode  string
	noClear    bool
	region     string
	profile    string
	logLevel   string
	logFile    string

	runner Runner
	lookup config.LookupFunc
}

// Execute sets up and runs the root command
func (cli *Cli) Execute() error {
	return cli.rootCommand().Execute()
}

func (cli *Cli) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "findingsexport",
		Short:         "Export Security Hub findings to a spreadsheet.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.createExportCommand())
	rootCmd.AddCommand(cli.createHeaderCommand())
	return rootCmd
}

// createExportCommand creates the 'export' subcommand with its flags
func (cli *Cli) createExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch critical unresolved findings and write them to the configured sink.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.buildConfig(cmd)
			if err != nil {
				return err
			}

			closer, err := utils.ConfigureLogging(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closer.Close()

			runner := cli.runner
			if runner.Build == nil {
				runner = NewRunner()
			}
			result, err := runner.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d findings to %s\n", result.Rows, result.Destination)
			return nil
		},
	}

	flags := exportCmd.Flags()
	flags.StringVar(&cli.configPath, "config", "", "Path to a YAML or TOML config file")
	flags.StringVar(&cli.sink, "sink", "", "Destination (supported: sheets, xlsx, sqlite, json)")
	flags.StringVar(&cli.output, "output", "", "Output file for the xlsx, sqlite and json sinks")
	flags.StringVar(&cli.sheetId, "sheet-id", "", "Google spreadsheet id")
	flags.StringVar(&cli.worksheet, "worksheet", "", "Worksheet name within the spreadsheet")
	flags.StringVar(&cli.writeMode, "write-mode", "", "Sheets write strategy (supported: bulk, append)")
	flags.BoolVar(&cli.noClear, "no-clear", false, "Do not clear the worksheet before writing")
	flags.StringVar(&cli.region, "region", "", "AWS region to query")
	flags.StringVar(&cli.profile, "profile", "", "AWS shared config profile")
	flags.StringVar(&cli.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARNING, ERROR)")
	flags.StringVar(&cli.logFile, "log-file", "", "Also write logs to this file")
	return exportCmd
}

func (cli *Cli) createHeaderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "header",
		Short: "Print the column header written to every sink.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printHeader(cmd.OutOrStdout())
		},
	}
}

func printHeader(w io.Writer) {
	fmt.Fprintln(w, strings.Join(core.Header, ","))
}

// buildConfig layers defaults, the config file, the environment and finally the
// command-line flags.
func (cli *Cli) buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg, cli.lookup)

	override := func(value string, target *string) {
		if value != "" {
			*target = value
		}
	}
	override(cli.sink, &cfg.Sink)
	override(cli.sheetId, &cfg.Sheets.SpreadsheetId)
	override(cli.worksheet, &cfg.Sheets.Worksheet)
	override(cli.writeMode, &cfg.Sheets.WriteMode)
	override(cli.region, &cfg.Aws.Region)
	override(cli.profile, &cfg.Aws.Profile)
	override(cli.logLevel, &cfg.LogLevel)
	override(cli.logFile, &cfg.LogFile)
	if cli.output != "" {
		switch cfg.Sink {
		case config.SinkSqlite:
			cfg.Sqlite.Output = cli.output
		case config.SinkJson:
			cfg.Json.Output = cli.output
		case config.SinkXlsx:
			cfg.Xlsx.Output = cli.output
		case config.SinkSheets:
			return cfg, fmt.Errorf("--output is not supported by the %s sink", cfg.Sink)
		}
	}
	if cmd.Flags().Changed("no-clear") {
		clearFirst := !cli.noClear
		cfg.Sheets.ClearFirst = &clearFirst
	}

	return cfg, cfg.Validate()
}
