package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/mvi/internal/version"
	"github.com/arthur-debert/mvi/pkg/config"
	"github.com/arthur-debert/mvi/pkg/core"
	"github.com/arthur-debert/mvi/pkg/display"
	"github.com/arthur-debert/mvi/pkg/editor"
	"github.com/arthur-debert/mvi/pkg/errors"
	"github.com/arthur-debert/mvi/pkg/logging"
	"github.com/arthur-debert/mvi/pkg/types"
	"github.com/arthur-debert/mvi/pkg/ui"
	"github.com/arthur-debert/mvi/pkg/ui/confirmations"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbosity   int
	dryRun      bool
	configFile  string
	maxDepth    int
	exclude     []string
	yes         bool
	buffer      string
	printBuffer bool
	format      string
	color       string
	noPrune     bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "mvi [paths...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(f.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, f)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}
	rootCmd.SetUsageTemplate(usageTemplate)

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&f.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&f.configFile, "config", "", MsgFlagConfig)

	flags := rootCmd.Flags()
	flags.BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.IntVarP(&f.maxDepth, "max-depth", "d", -1, MsgFlagMaxDepth)
	flags.StringArrayVar(&f.exclude, "exclude", nil, MsgFlagExclude)
	flags.BoolVarP(&f.yes, "yes", "y", false, MsgFlagYes)
	flags.StringVar(&f.buffer, "buffer", "", MsgFlagBuffer)
	flags.BoolVar(&f.printBuffer, "print-buffer", false, MsgFlagPrintBuffer)
	flags.StringVar(&f.format, "format", "text", MsgFlagFormat)
	flags.StringVar(&f.color, "color", "auto", MsgFlagColor)
	flags.BoolVar(&f.noPrune, "no-prune", false, MsgFlagNoPrune)
	rootCmd.MarkFlagsMutuallyExclusive("buffer", "print-buffer")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newConfigCmd(f))

	return rootCmd
}

// loadConfig layers the configuration with the flags the user set
func loadConfig(cmd *cobra.Command, f *rootFlags) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("max-depth") {
		overrides["discovery.max_depth"] = f.maxDepth
	}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = f.format
	}
	if cmd.Flags().Changed("color") {
		overrides["output.color"] = f.color
	}
	if f.noPrune {
		overrides["prune.enabled"] = false
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}
	cfg.Discovery.Exclude = append(cfg.Discovery.Exclude, f.exclude...)
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string, f *rootFlags) error {
	logger := logging.GetLogger("cli")
	logging.LogCommand(cmd.Name(), args)

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format := cfg.Format()
	color := ui.UseColor(cfg.ColorMode(), asFile(out))

	// Machine readable output owns stdout, progress goes to stderr
	progress := out
	if format != ui.FormatText {
		progress = cmd.ErrOrStderr()
		color = ui.UseColor(cfg.ColorMode(), asFile(progress))
	}
	renderer := display.NewRenderer(progress, color)
	reporter := display.NewConsoleReporter(progress, renderer)

	opts := core.Options{
		Roots:        args,
		MaxDepth:     cfg.Discovery.MaxDepth,
		Exclude:      cfg.Discovery.Exclude,
		DeleteTokens: cfg.Parser.DeleteTokens,
		Prune:        cfg.Prune.Enabled,
		KeepRoots:    cfg.Prune.KeepRoots,
		DryRun:       f.dryRun,
		Reporter:     reporter,
		Confirmer:    newConfirmer(cmd, f.yes),
	}

	if f.printBuffer {
		idx, err := core.Enumerate(opts)
		if err != nil {
			return noFilesIsFine(cmd, err)
		}
		if _, err := fmt.Fprintln(out, idx.Render()); err != nil {
			return errors.Wrap(err, errors.ErrIO, MsgErrWriteOut)
		}
		return nil
	}

	if f.buffer != "" {
		text, err := readBuffer(cmd, f.buffer)
		if err != nil {
			return err
		}
		opts.Buffer = &text
	} else {
		opts.Editor = editor.NewExternal(editor.ResolveCommand(cfg.Editor.Command))
	}

	logger.Debug().
		Strs("roots", args).
		Int("maxDepth", opts.MaxDepth).
		Bool("dryRun", opts.DryRun).
		Msg("Starting session")

	result, runErr := core.Run(cmd.Context(), opts)
	if runErr != nil && errors.IsErrorCode(runErr, errors.ErrNoFiles) {
		return noFilesIsFine(cmd, runErr)
	}

	if result != nil && result.Execution != nil {
		if err := writeSummary(out, reporter, format, result); err != nil {
			return err
		}
	}
	return runErr
}

func writeSummary(out io.Writer, reporter *display.ConsoleReporter, format ui.Format, result *core.Result) error {
	plan := display.PlanFromResult(result.Execution)

	if format != ui.FormatText {
		if err := display.WritePlan(out, format, plan); err != nil {
			return errors.Wrap(err, errors.ErrIO, MsgErrWriteOut)
		}
		return nil
	}

	if len(result.Order) == 0 {
		reporter.Message(MsgNoChanges)
		return nil
	}
	reporter.Message(plan.Summary())
	return nil
}

func newConfirmer(cmd *cobra.Command, yes bool) types.Confirmer {
	if yes {
		return confirmations.AutoConfirmer{Answer: true}
	}
	return confirmations.NewConsoleConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
}

func readBuffer(cmd *cobra.Command, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrIO, MsgErrReadBuffer, name).
			WithDetail("op", "read").
			WithDetail("path", name)
	}
	return string(data), nil
}

func noFilesIsFine(cmd *cobra.Command, err error) error {
	if errors.IsErrorCode(err, errors.ErrNoFiles) {
		fmt.Fprintln(cmd.ErrOrStderr(), MsgNoFiles)
		return nil
	}
	return err
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
