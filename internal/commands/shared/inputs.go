package shared

import (
	"fmt"
	"time"

	"github.com/10gen/mongo-bootstrap/internal/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/profile"
	"github.com/10gen/mongo-bootstrap/internal/terminal"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/pflag"
)

// input field names, per survey
const (
	inputFieldAdminPassword        = "adminPassword"
	inputFieldReplicaAdminPassword = "replicaAdminPassword"
)

// PlanInputs are the inputs describing the bootstrap plan and how to reach the deployment
type PlanInputs struct {
	PlanFile             string
	AdminUsername        string
	AdminPassword        string
	ReplicaAdminUsername string
	ReplicaAdminPassword string
	Timeout              time.Duration

	plan bootstrap.Plan
}

// Flags registers the plan input flags to the provided flag set,
// including a password flag for each password the policy calls for
func (i *PlanInputs) Flags(fs *pflag.FlagSet, policy PasswordPolicy) {
	planFlags := []flags.Flag{
		flags.StringFlag{Meta: flagPlan, Value: &i.PlanFile},
		flags.StringFlag{Meta: flagAdminUsername, Value: &i.AdminUsername},
		flags.StringFlag{Meta: flagReplicaAdminUsername, Value: &i.ReplicaAdminUsername},
	}
	if policy >= PasswordsAdmin {
		planFlags = append(planFlags, flags.StringFlag{Meta: flagAdminPassword, Value: &i.AdminPassword})
	}
	if policy >= PasswordsAll {
		planFlags = append(planFlags, flags.StringFlag{Meta: flagReplicaAdminPassword, Value: &i.ReplicaAdminPassword})
	}
	planFlags = append(planFlags, TimeoutFlag(&i.Timeout))

	for _, flag := range planFlags {
		flag.Register(fs)
	}
}

// PasswordPolicy controls which passwords Resolve looks for
type PasswordPolicy int

// set of password policies
const (
	PasswordsNone PasswordPolicy = iota
	PasswordsAdmin
	PasswordsAll
)

// Resolve builds the plan from the plan file and flags, then resolves any
// missing passwords the policy calls for from the environment or a prompt
func (i *PlanInputs) Resolve(profile *profile.Profile, ui terminal.UI, policy PasswordPolicy) error {
	plan := bootstrap.DefaultPlan()
	if i.PlanFile != "" {
		p, err := bootstrap.LoadPlan(profile.Fs(), i.PlanFile)
		if err != nil {
			return err
		}
		plan = p
	}

	if i.AdminUsername != "" {
		plan.Admin.Username = i.AdminUsername
	}
	if i.ReplicaAdminUsername != "" {
		plan.ReplicaAdmin.Username = i.ReplicaAdminUsername
	}
	if err := plan.Validate(false); err != nil {
		return err
	}

	var questions []*survey.Question

	if policy >= PasswordsAdmin {
		if i.AdminPassword == "" {
			i.AdminPassword = profile.Env(EnvAdminPassword)
		}
		if i.AdminPassword == "" {
			questions = append(questions, &survey.Question{
				Name:     inputFieldAdminPassword,
				Prompt:   &survey.Password{Message: fmt.Sprintf("Password for %s", plan.Admin.Username)},
				Validate: passwordValidator(policy),
			})
		}
	}

	if policy >= PasswordsAll {
		if i.ReplicaAdminPassword == "" {
			i.ReplicaAdminPassword = profile.Env(EnvReplicaAdminPassword)
		}
		if i.ReplicaAdminPassword == "" {
			questions = append(questions, &survey.Question{
				Name:     inputFieldReplicaAdminPassword,
				Prompt:   &survey.Password{Message: fmt.Sprintf("Password for %s", plan.ReplicaAdmin.Username)},
				Validate: survey.Required,
			})
		}
	}

	if len(questions) > 0 {
		if err := ui.Ask(i, questions...); err != nil {
			return err
		}
	}

	plan.Admin.Password = i.AdminPassword
	plan.ReplicaAdmin.Password = i.ReplicaAdminPassword
	i.plan = plan
	return nil
}

// an empty admin password is allowed when it is only used to read
func passwordValidator(policy PasswordPolicy) survey.Validator {
	if policy == PasswordsAll {
		return survey.Required
	}
	return nil
}

// Plan returns the resolved plan
func (i PlanInputs) Plan() bootstrap.Plan {
	return i.plan
}

// Args returns the plan flags that were set, for use in suggested commands
func (i PlanInputs) Args() []flags.Arg {
	var args []flags.Arg
	if i.PlanFile != "" {
		args = append(args, flags.Arg{Name: FlagPlan, Value: i.PlanFile})
	}
	if i.AdminUsername != "" {
		args = append(args, flags.Arg{Name: FlagAdminUsername, Value: i.AdminUsername})
	}
	if i.ReplicaAdminUsername != "" {
		args = append(args, flags.Arg{Name: FlagReplicaAdminUsername, Value: i.ReplicaAdminUsername})
	}
	return args
}

// ConnectOptions returns the options to connect to the profile's deployment
func (i PlanInputs) ConnectOptions(profile *profile.Profile) mongodb.ConnectOptions {
	return mongodb.ConnectOptions{
		URI:     profile.Flags.URI,
		Direct:  profile.Flags.Direct,
		Timeout: i.Timeout,
	}
}
