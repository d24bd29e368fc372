package cmd

import (
	"fmt"
	"os"

	"alsdump/als"
	"alsdump/config"
	"alsdump/logging"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	output     string
	dumpXML    string
	summary    bool
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:   "alsdump <als file>",
		Short: "Extract audio clip metadata from an Ableton Live set",
		Long: `alsdump reads a gzip-compressed Ableton Live set (.als), finds every
AudioClip element and writes the clips' start times and sample paths as YAML.

Clips are sorted by start time and the paths list holds each referenced
sample once.`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runRoot(cmd, args[0], opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output file")
	flags.StringVar(&opts.dumpXML, "dump-xml", "", "Also write the decompressed XML to this file")
	flags.BoolVarP(&opts.summary, "summary", "s", false, "Print a table of the extracted clips")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (auto, console, json)")

	return rootCmd
}

func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, inputFile string, opts rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}

	log := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: cmd.ErrOrStderr(),
	})

	log.Info().Str("input", inputFile).Msg("parsing live set")
	res, err := als.ParseFileWithOptions(inputFile, als.ParseOptions{DumpXML: cfg.DumpXML})
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputFile, err)
	}
	if cfg.DumpXML != "" {
		log.Info().Str("file", cfg.DumpXML).Msg("dumped decompressed xml")
	}
	for _, c := range res.AudioClips {
		log.Debug().Float64("start", c.Start).Str("path", c.Path).Msg("audio clip")
	}

	if err := als.WriteFile(cfg.Output, res); err != nil {
		return err
	}
	log.Info().
		Str("output", cfg.Output).
		Int("clips", len(res.AudioClips)).
		Int("paths", len(res.Paths)).
		Msg("wrote clip list")

	if cfg.Summary {
		fmt.Fprintln(cmd.OutOrStdout(), renderClipTable(res))
	}
	return nil
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts rootOptions) error {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.output
	}
	if flags.Changed("dump-xml") {
		cfg.DumpXML = opts.dumpXML
	}
	if flags.Changed("summary") {
		cfg.Summary = opts.summary
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	return cfg.Validate()
}
