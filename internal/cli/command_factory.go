package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/profile"
	"github.com/10gen/mongo-bootstrap/internal/telemetry"
	"github.com/10gen/mongo-bootstrap/internal/terminal"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandFactory is a command factory
type CommandFactory struct {
	profile          *profile.Profile
	ui               terminal.UI
	uiConfig         terminal.UIConfig
	inReader         *os.File
	outWriter        *os.File
	errWriter        *os.File
	errLogger        *log.Logger
	telemetryService telemetry.Service
	mongo            mongodb.Connector
}

// NewCommandFactory creates a new command factory
func NewCommandFactory() *CommandFactory {
	errLogger := log.New(os.Stderr, "UTC ERROR ", log.Ltime|log.Lmsgprefix)

	p, profileErr := profile.NewDefaultProfile()
	if profileErr != nil {
		errLogger.Fatal(profileErr)
	}

	return &CommandFactory{
		profile:   p,
		errLogger: errLogger,
		mongo:     mongodb.NewConnector(),
	}
}

// Build builds a Cobra command from the specified CommandDefinition
func (factory *CommandFactory) Build(command CommandDefinition) *cobra.Command {
	display := command.Display
	if display == "" {
		display = command.Use
	}

	cmd := cobra.Command{
		Use:     command.Use,
		Short:   command.Description,
		Long:    command.HelpText,
		Aliases: command.Aliases,
		Hidden:  command.Hidden,
	}

	cmd.InheritedFlags().SortFlags = false // ensures command usage text displays global flags unsorted

	for _, subCommand := range command.SubCommands {
		cmd.AddCommand(factory.Build(subCommand))
	}

	if command.Command == nil {
		return &cmd
	}

	if command, ok := command.Command.(CommandFlags); ok {
		fs := cmd.Flags()
		fs.SortFlags = false // ensures command flags are added unsorted
		command.Flags(fs)
	}

	cmd.PersistentPreRunE = func(c *cobra.Command, a []string) error {
		factory.ensureUI()
		c.SetIn(factory.inReader)
		c.SetOut(factory.outWriter)
		c.SetErr(factory.errWriter)

		if err := factory.profile.ResolveFlags(); err != nil {
			return errDisableUsage{err}
		}

		if factory.telemetryService == nil {
			factory.telemetryService = telemetry.NewService(telemetry.Config{
				Mode:    factory.profile.Flags.TelemetryMode,
				Profile: factory.profile.Name,
				Command: display,
				Version: Version,
				Dir:     factory.profile.Dir(),
				Fs:      factory.profile.Fs(),
			})
		}
		return nil
	}

	if command, ok := command.Command.(CommandInputs); ok {
		cmd.PreRunE = func(c *cobra.Command, a []string) error {
			if err := command.Inputs().Resolve(factory.profile, factory.ui); err != nil {
				return fmt.Errorf("%s setup failed: %w", display, err)
			}
			return nil
		}
	}

	cmd.RunE = func(c *cobra.Command, a []string) error {
		factory.telemetryService.TrackEvent(telemetry.EventTypeCommandStart)

		err := command.Command.Handler(c.Context(), factory.profile, factory.ui, Clients{
			Mongo: factory.mongo,
		})
		if err != nil {
			factory.telemetryService.TrackEvent(
				telemetry.EventTypeCommandError,
				telemetry.EventData{Key: telemetry.EventDataKeyErr, Value: err},
			)
			return fmt.Errorf("%s failed: %w", display, errDisableUsage{err})
		}

		factory.telemetryService.TrackEvent(telemetry.EventTypeCommandComplete)
		return nil
	}

	return &cmd
}

// Close closes the command factory
func (factory *CommandFactory) Close() {
	if factory.telemetryService != nil {
		factory.telemetryService.Close()
	}

	if factory.uiConfig.OutputTarget != "" && factory.outWriter != nil {
		factory.outWriter.Close()
	}
}

// Run executes the command, cancelling it on interrupt, and returns the process exit code
func (factory *CommandFactory) Run(cmd *cobra.Command) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := factory.Execute(ctx, cmd); err != nil {
		return 1
	}
	return 0
}

// Execute executes the command and prints any error it returns
func (factory *CommandFactory) Execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	handleUsage(cmd, err)

	if factory.ui == nil {
		factory.errLogger.Print(err)
		return err
	}

	logs := []terminal.Log{terminal.NewErrorLog(err)}

	var suggester CommandSuggester
	if errors.As(err, &suggester) && len(suggester.SuggestedCommands()) > 0 {
		logs = append(logs, terminal.NewFollowupLog(terminal.MsgSuggestedCommands, suggester.SuggestedCommands()...))
	}

	var referrer LinkReferrer
	if errors.As(err, &referrer) && len(referrer.ReferenceLinks()) > 0 {
		logs = append(logs, terminal.NewFollowupLog(terminal.MsgReferenceLinks, referrer.ReferenceLinks()...))
	}

	factory.ui.Print(logs...)
	return err
}

// SetGlobalFlags sets the global flags
func (factory *CommandFactory) SetGlobalFlags(fs *pflag.FlagSet) {
	fs.SortFlags = false // ensures global flags are added unsorted

	// profile flags
	fs.StringVar(&factory.profile.Name, profile.FlagProfile, profile.DefaultProfile, profile.FlagProfileUsage)
	fs.StringVar(&factory.profile.Flags.URI, profile.FlagURI, "", profile.FlagURIUsage)
	fs.BoolVar(&factory.profile.Flags.Direct, profile.FlagDirect, false, profile.FlagDirectUsage)
	flags.CustomFlag{
		Meta: flags.Meta{
			Name: telemetry.FlagMode,
			Usage: flags.Usage{
				Description:   telemetry.FlagModeDescription,
				AllowedValues: telemetry.ModeNames(),
			},
		},
		Value: &factory.profile.Flags.TelemetryMode,
	}.Register(fs)

	// ui flags
	fs.StringVarP(&factory.uiConfig.OutputTarget, terminal.FlagOutputTarget, terminal.FlagOutputTargetShort, "", terminal.FlagOutputTargetUsage)
	fs.VarP(&factory.uiConfig.OutputFormat, terminal.FlagOutputFormat, terminal.FlagOutputFormatShort, terminal.FlagOutputFormatUsage)
	fs.BoolVar(&factory.uiConfig.DisableColors, terminal.FlagDisableColors, false, terminal.FlagDisableColorsUsage)
	fs.BoolVarP(&factory.uiConfig.AutoConfirm, terminal.FlagAutoConfirm, terminal.FlagAutoConfirmShort, false, terminal.FlagAutoConfirmUsage)
}

// Setup initializes the command factory
func (factory *CommandFactory) Setup() {
	if err := factory.profile.Load(); err != nil {
		factory.errLogger.Fatal(err)
	}

	if filepath := factory.uiConfig.OutputTarget; filepath != "" {
		f, err := os.OpenFile(filepath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0660)
		if err != nil {
			factory.errLogger.Fatal(fmt.Errorf("failed to open target file: %w", err))
		}
		factory.outWriter = f
	}
}

func (factory *CommandFactory) ensureUI() {
	if factory.inReader == nil {
		factory.inReader = os.Stdin
	}

	if factory.outWriter == nil {
		factory.outWriter = os.Stdout
	}

	if factory.errWriter == nil {
		if factory.uiConfig.OutputTarget != "" {
			factory.errWriter = factory.outWriter
		} else {
			factory.errWriter = os.Stderr
		}
	}

	if factory.ui == nil {
		factory.ui = terminal.NewUI(factory.uiConfig, factory.inReader, factory.outWriter, factory.errWriter, factory.errLogger)
	}
}

func handleUsage(cmd *cobra.Command, err error) {
	var disableUsage DisableUsage
	if errors.As(err, &disableUsage) {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
}
