package ping

import (
	"context"
	"fmt"
	"time"

	"github.com/10gen/mongo-bootstrap/internal/cli"
	"github.com/10gen/mongo-bootstrap/internal/commands/shared"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/profile"
	"github.com/10gen/mongo-bootstrap/internal/terminal"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/pflag"
)

// CommandMeta is the command meta for the `ping` command
var CommandMeta = cli.CommandMeta{
	Use:         "ping",
	Description: "Check the deployment is reachable",
	HelpText: `Check the deployment is reachable

Connects to the deployment and pings the primary, optionally authenticating
as the provided user.`,
}

// set of ping flags
const (
	flagUsername   = "username"
	flagPassword   = "password"
	flagAuthSource = "auth-source"

	envPassword = "password"
)

// Command is the `ping` command
type Command struct {
	inputs inputs
}

type inputs struct {
	Username   string
	Password   string
	AuthSource string
	Timeout    time.Duration
}

func (i *inputs) Resolve(profile *profile.Profile, ui terminal.UI) error {
	if err := mongodb.ValidateURI(profile.Flags.URI); err != nil {
		return err
	}

	if i.Username == "" || i.Password != "" {
		return nil
	}

	if i.Password = profile.Env(envPassword); i.Password != "" {
		return nil
	}
	return ui.AskOne(&i.Password, &survey.Password{Message: fmt.Sprintf("Password for %s", i.Username)})
}

// Flags is the command flags
func (cmd *Command) Flags(fs *pflag.FlagSet) {
	for _, flag := range []flags.Flag{
		flags.StringFlag{
			Meta:  flags.Meta{Name: flagUsername, Shorthand: "u", Usage: flags.Usage{Description: "Specify the user to authenticate as"}},
			Value: &cmd.inputs.Username,
		},
		flags.StringFlag{
			Meta: flags.Meta{Name: flagPassword, Shorthand: "p", Usage: flags.Usage{
				Description: "Specify the password of the user to authenticate as",
				Note:        "falls back to MONGO_BOOTSTRAP_PASSWORD, then a prompt",
			}},
			Value: &cmd.inputs.Password,
		},
		flags.StringFlag{
			Meta:         flags.Meta{Name: flagAuthSource, Usage: flags.Usage{Description: "Specify the database the user is defined on"}},
			Value:        &cmd.inputs.AuthSource,
			DefaultValue: mongodb.DefaultAuthSource,
		},
		shared.TimeoutFlag(&cmd.inputs.Timeout),
	} {
		flag.Register(fs)
	}
}

// Inputs is the command inputs
func (cmd *Command) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *Command) Handler(ctx context.Context, profile *profile.Profile, ui terminal.UI, clients cli.Clients) error {
	opts := mongodb.ConnectOptions{
		URI:     profile.Flags.URI,
		Direct:  profile.Flags.Direct,
		Timeout: cmd.inputs.Timeout,
	}
	if cmd.inputs.Username != "" {
		opts = opts.WithCredential(cmd.inputs.Username, cmd.inputs.Password, cmd.inputs.AuthSource)
	}

	s := ui.Spinner(fmt.Sprintf("Connecting to %s...", mongodb.RedactURI(opts.URI)), terminal.SpinnerOptions{})
	s.Start()

	client, err := clients.Mongo.Connect(ctx, opts)
	if err != nil {
		s.Stop()
		return shared.ClassifyErr(err)
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	pingErr := client.Ping(ctx)
	s.Stop()
	if pingErr != nil {
		return shared.ClassifyErr(pingErr)
	}

	if cmd.inputs.Username != "" {
		ui.Print(terminal.NewTextLog("Successfully connected to %s as %s", mongodb.RedactURI(opts.URI), cmd.inputs.Username))
		return nil
	}
	ui.Print(terminal.NewTextLog("Successfully connected to %s", mongodb.RedactURI(opts.URI)))
	return nil
}
