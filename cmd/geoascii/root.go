package geoascii

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/geoascii/internal/version"
	"github.com/arthur-debert/geoascii/pkg/cobrax/topics"
	"github.com/arthur-debert/geoascii/pkg/config"
	"github.com/arthur-debert/geoascii/pkg/errors"
	"github.com/arthur-debert/geoascii/pkg/logging"
	"github.com/arthur-debert/geoascii/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// globalFlags are shared by every command
type globalFlags struct {
	verbosity  int
	configPath string
	noColor    bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		global globalFlags
		rf     renderFlags
	)

	rootCmd := &cobra.Command{
		Use:     "geoascii INFILE...",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.String(),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &global, &rf)
			if err != nil {
				return err
			}
			config.Initialize(cfg)
			logging.SetupLoggerWithOptions(logging.Options{
				Verbosity: cfg.Logging.Verbosity,
				File:      cfg.Logging.File,
				Console:   cmd.ErrOrStderr(),
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return errors.New(errors.ErrInvalidInput, MsgErrNoInput)
			}
			return runRender(cmd, config.Get(), &rf, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&global.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&global.configPath, "config", "", MsgFlagConfig)
	pf.BoolVar(&global.noColor, "no-color", false, MsgFlagNoColor)

	// Render flags
	f := rootCmd.Flags()
	f.StringVarP(&rf.outfile, "outfile", "o", "", MsgFlagOutfile)
	f.IntVarP(&rf.width, "width", "w", 0, MsgFlagWidth)
	f.BoolVarP(&rf.iterate, "iterate", "i", false, MsgFlagIterate)
	f.StringVarP(&rf.fill, "fill", "f", "", MsgFlagFill)
	f.StringArrayVarP(&rf.chars, "char", "c", nil, MsgFlagChar)
	f.BoolVar(&rf.allTouched, "all-touched", false, MsgFlagAllTouched)
	f.StringArrayVar(&rf.crs, "crs", nil, MsgFlagCRS)
	f.BoolVar(&rf.noPrompt, "no-prompt", false, MsgFlagNoPrompt)
	f.StringVarP(&rf.properties, "properties", "p", "", MsgFlagProps)
	f.StringVar(&rf.bbox, "bbox", "", MsgFlagBBox)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLayersCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	helpTopics, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		opts := topics.Options{
			Renderer: topics.NewGlamourRenderer(ui.DetectFormat(os.Stdout) != ui.FormatTerminal),
		}
		if err := topics.InitializeWithOptions(rootCmd, helpTopics, opts); err != nil {
			log.Warn().Err(err).Msg("help topics unavailable")
		}
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			c.GroupID = "misc"
		}
	}

	return rootCmd
}

// loadConfig layers command line flags over the configuration files and
// environment. Flags that were not given leave the configured values alone.
func loadConfig(cmd *cobra.Command, global *globalFlags, rf *renderFlags) (*config.Config, error) {
	flags := cmd.Flags()
	overrides := map[string]any{}

	if flags.Changed("width") {
		if rf.width <= 0 {
			return nil, errors.Newf(errors.ErrInvalidWidth, "width must be positive, got %d", rf.width).
				WithDetail("width", rf.width)
		}
		overrides["render.width"] = rf.width
	}
	if flags.Changed("all-touched") {
		overrides["render.all_touched"] = rf.allTouched
	}
	if flags.Changed("no-prompt") && rf.noPrompt {
		overrides["paginate.prompt"] = false
	}
	if flags.Changed("properties") {
		overrides["paginate.properties"] = splitProperties(rf.properties)
	}
	if flags.Changed("no-color") && global.noColor {
		overrides["output.color"] = string(config.ColorNever)
	}
	if flags.Changed("verbose") {
		overrides["logging.verbosity"] = global.verbosity
	}

	return config.Load(config.LoadOptions{Path: global.configPath, Overrides: overrides})
}
