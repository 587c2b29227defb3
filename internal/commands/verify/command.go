package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/10gen/mongo-bootstrap/internal/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/cli"
	"github.com/10gen/mongo-bootstrap/internal/commands/shared"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/profile"
	"github.com/10gen/mongo-bootstrap/internal/terminal"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"

	"github.com/spf13/pflag"
)

// CommandMeta is the command meta for the `verify` command
var CommandMeta = cli.CommandMeta{
	Use:         "verify",
	Aliases:     []string{"check"},
	Description: "Check the deployment holds exactly the bootstrapped accounts",
	HelpText: `Check the deployment holds exactly the bootstrapped accounts

Authenticates as the user administrator, lists the users of the plan's
database and compares them to the plan. The check fails if a user is
missing, an unexpected user exists, or a user's roles differ from the plan.`,
}

const (
	headerUser  = "User"
	headerRoles = "Roles"
)

// Command is the `verify` command
type Command struct {
	inputs inputs
}

type inputs struct {
	shared.PlanInputs
}

func (i *inputs) Resolve(profile *profile.Profile, ui terminal.UI) error {
	if err := mongodb.ValidateURI(profile.Flags.URI); err != nil {
		return err
	}
	return i.PlanInputs.Resolve(profile, ui, shared.PasswordsAdmin)
}

// Flags is the command flags
func (cmd *Command) Flags(fs *pflag.FlagSet) {
	cmd.inputs.PlanInputs.Flags(fs, shared.PasswordsAdmin)
}

// Inputs is the command inputs
func (cmd *Command) Inputs() cli.InputResolver {
	return &cmd.inputs
}

// Handler is the command handler
func (cmd *Command) Handler(ctx context.Context, profile *profile.Profile, ui terminal.UI, clients cli.Clients) error {
	plan := cmd.inputs.Plan()

	report, err := bootstrap.Verify(ctx, clients.Mongo, cmd.inputs.ConnectOptions(profile), plan)
	if err != nil {
		return shared.ClassifyErr(err)
	}

	ui.Print(usersLog(report))

	if !report.OK() {
		ui.Print(differencesLog(report))
		return errMismatch{report, cmd.inputs.Args()}
	}

	ui.Print(terminal.NewTextLog("Deployment matches the plan"))
	return nil
}

func usersLog(report bootstrap.Report) terminal.Log {
	rows := make([]map[string]interface{}, 0, len(report.Users))
	for _, user := range report.Users {
		roles := make([]string, 0, len(user.Roles))
		for _, role := range user.Roles {
			roles = append(roles, role.String())
		}
		sort.Strings(roles)

		rows = append(rows, map[string]interface{}{
			headerUser:  user.Name,
			headerRoles: strings.Join(roles, ", "),
		})
	}
	return terminal.NewTableLog(
		fmt.Sprintf("Found %d user(s) on %s", len(report.Users), report.Database),
		[]string{headerUser, headerRoles},
		rows...,
	)
}

func differencesLog(report bootstrap.Report) terminal.Log {
	summary := report.Summary()

	items := make([]interface{}, 0, len(summary))
	for _, difference := range summary {
		items = append(items, difference)
	}
	return terminal.NewListLog("Differences from the plan", items...)
}

type errMismatch struct {
	report bootstrap.Report
	args   []flags.Arg
}

func (err errMismatch) Error() string {
	return fmt.Sprintf("deployment does not match the plan: %s", strings.Join(err.report.Summary(), "; "))
}

func (err errMismatch) SuggestedCommands() []string {
	if len(err.report.Users) == 0 {
		return []string{fmt.Sprintf("%s bootstrap%s", cli.Name, flags.Args(err.args...))}
	}
	return nil
}
