package bootstrap

import (
	"context"
	"fmt"

	"github.com/10gen/mongo-bootstrap/internal/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/cli"
	"github.com/10gen/mongo-bootstrap/internal/commands/shared"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/profile"
	"github.com/10gen/mongo-bootstrap/internal/terminal"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"

	"github.com/spf13/pflag"
)

// CommandMeta is the command meta for the `bootstrap` command
var CommandMeta = cli.CommandMeta{
	Use:         "bootstrap",
	Aliases:     []string{"init"},
	Description: "Create the user administrator and cluster administrator accounts",
	HelpText: `Create the user administrator and cluster administrator accounts

Connects to the deployment and runs, in order:
  1. use admin
  2. createUser for the user administrator (userAdminAnyDatabase@admin)
  3. authenticate as the user administrator
  4. createUser for the cluster administrator (clusterAdmin@admin)

The sequence stops at the first failure. Run with --dry-run to print the
commands without connecting.`,
}

const (
	flagDryRun = "dry-run"
)

// Command is the `bootstrap` command
type Command struct {
	inputs inputs
}

type inputs struct {
	shared.PlanInputs
	DryRun bool
}

func (i *inputs) Resolve(profile *profile.Profile, ui terminal.UI) error {
	if err := mongodb.ValidateURI(profile.Flags.URI); err != nil {
		return err
	}

	policy := shared.PasswordsAll
	if i.DryRun {
		policy = shared.PasswordsNone
	}
	return i.PlanInputs.Resolve(profile, ui, policy)
}

// Flags is the command flags
func (cmd *Command) Flags(fs *pflag.FlagSet) {
	cmd.inputs.PlanInputs.Flags(fs, shared.PasswordsAll)

	flags.BoolFlag{
		Meta: flags.Meta{
			Name:  flagDryRun,
			Usage: flags.Usage{Description: "Print the commands the bootstrap would run without connecting"},
		},
		Value: &cmd.inputs.DryRun,
	}.Register(fs)
}

// Inputs is the command inputs
func (cmd *Command) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *Command) Handler(ctx context.Context, profile *profile.Profile, ui terminal.UI, clients cli.Clients) error {
	plan := cmd.inputs.Plan()
	opts := cmd.inputs.ConnectOptions(profile)

	if cmd.inputs.DryRun {
		ui.Print(previewLog(plan, opts.URI))
		return nil
	}

	proceed, err := ui.Confirm(
		"Create users %s and %s on %s at %s?",
		plan.Admin.Username,
		plan.ReplicaAdmin.Username,
		plan.Database,
		mongodb.RedactURI(opts.URI),
	)
	if err != nil {
		return err
	}
	if !proceed {
		ui.Print(terminal.NewTextLog("No users were created"))
		return nil
	}

	s := ui.Spinner("Bootstrapping users...", terminal.SpinnerOptions{})
	s.Start()

	results, runErr := bootstrap.Runner{
		Connector: clients.Mongo,
		Options:   opts,
		Observer: func(result bootstrap.StepResult) {
			s.SetMessage(fmt.Sprintf("%s: %s", result.Step, result.Status))
		},
	}.Run(ctx, plan)

	s.Stop()

	if len(results) > 0 {
		ui.Print(resultsLog(results))
	}
	if runErr != nil {
		return shared.ClassifyErr(runErr)
	}

	if err := rememberDeployment(profile); err != nil {
		ui.Print(terminal.NewWarningLog("Failed to save the connection string to the profile: %s", err))
	}

	ui.Print(terminal.NewTextLog(
		"Successfully created users %s and %s on %s",
		plan.Admin.Username,
		plan.ReplicaAdmin.Username,
		plan.Database,
	))
	return nil
}

// rememberDeployment saves the connection string unless it carries a password
func rememberDeployment(profile *profile.Profile) error {
	uri := profile.Flags.URI
	if mongodb.RedactURI(uri) != uri {
		return nil
	}

	profile.SetURI(uri)
	profile.SetDirect(profile.Flags.Direct)
	return profile.Save()
}
