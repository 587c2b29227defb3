package bootstrap

import (
	"errors"
	"fmt"

	"github.com/10gen/mongo-bootstrap/internal/mongodb"
)

// set of plan defaults
const (
	DefaultDatabase             = "admin"
	DefaultAdminUsername        = "michael"
	DefaultReplicaAdminUsername = "replicaAdmin"
)

// set of roles granted by the default plan
const (
	RoleUserAdminAnyDatabase = "userAdminAnyDatabase"
	RoleClusterAdmin         = "clusterAdmin"
)

// Account is a user account created by the bootstrap sequence
type Account struct {
	Username string         `yaml:"username,omitempty"`
	Password string         `yaml:"-"`
	Roles    []mongodb.Role `yaml:"roles,omitempty"`
}

// User returns the account as a database user
func (a Account) User() mongodb.User {
	return mongodb.User{Name: a.Username, Password: a.Password, Roles: a.Roles}
}

// Plan describes the accounts to bootstrap and the database they live in
type Plan struct {
	Database     string  `yaml:"database,omitempty"`
	Admin        Account `yaml:"admin"`
	ReplicaAdmin Account `yaml:"replica_admin"`
}

// DefaultPlan returns the default bootstrap plan, without passwords
func DefaultPlan() Plan {
	return Plan{
		Database: DefaultDatabase,
		Admin: Account{
			Username: DefaultAdminUsername,
			Roles:    []mongodb.Role{{Role: RoleUserAdminAnyDatabase, DB: DefaultDatabase}},
		},
		ReplicaAdmin: Account{
			Username: DefaultReplicaAdminUsername,
			Roles:    []mongodb.Role{{Role: RoleClusterAdmin, DB: DefaultDatabase}},
		},
	}
}

// Validate checks the plan is complete; passwords are only checked if required
func (p Plan) Validate(requirePasswords bool) error {
	if p.Database == "" {
		return errors.New("plan must specify a database")
	}

	for _, a := range []struct {
		name    string
		account Account
	}{
		{"admin", p.Admin},
		{"replica admin", p.ReplicaAdmin},
	} {
		if a.account.Username == "" {
			return fmt.Errorf("%s account must have a username", a.name)
		}
		if requirePasswords && a.account.Password == "" {
			return fmt.Errorf("%s account must have a password", a.name)
		}
		if len(a.account.Roles) == 0 {
			return fmt.Errorf("%s account must be granted at least one role", a.name)
		}
		for _, role := range a.account.Roles {
			if role.Role == "" || role.DB == "" {
				return fmt.Errorf("%s account has an incomplete role grant: %q", a.name, role.String())
			}
		}
	}

	if p.Admin.Username == p.ReplicaAdmin.Username {
		return fmt.Errorf("admin and replica admin accounts must have different usernames, both are %q", p.Admin.Username)
	}
	return nil
}

// StepKind is the kind of a bootstrap step
type StepKind string

// set of bootstrap step kinds
const (
	StepUse        StepKind = "use"
	StepCreateUser StepKind = "createUser"
	StepAuth       StepKind = "auth"
)

// Step is a single step of the bootstrap sequence
type Step struct {
	Kind     StepKind
	Database string
	User     mongodb.User
}

func (s Step) String() string {
	switch s.Kind {
	case StepUse:
		return fmt.Sprintf("use %s", s.Database)
	case StepCreateUser:
		return fmt.Sprintf("create user %s", s.User.Name)
	case StepAuth:
		return fmt.Sprintf("authenticate as %s", s.User.Name)
	}
	return string(s.Kind)
}

// Steps returns the bootstrap sequence for the plan
func (p Plan) Steps() []Step {
	admin := p.Admin.User()
	return []Step{
		{Kind: StepUse, Database: p.Database},
		{Kind: StepCreateUser, Database: p.Database, User: admin},
		{Kind: StepAuth, Database: p.Database, User: mongodb.User{Name: admin.Name, Password: admin.Password}},
		{Kind: StepCreateUser, Database: p.Database, User: p.ReplicaAdmin.User()},
	}
}
