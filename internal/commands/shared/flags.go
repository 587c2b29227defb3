package shared

import (
	"time"

	"github.com/10gen/mongo-bootstrap/internal/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"
)

// set of plan flags
const (
	FlagPlan                 = "plan"
	FlagAdminUsername        = "admin-username"
	FlagAdminPassword        = "admin-password"
	FlagReplicaAdminUsername = "replica-admin-username"
	FlagReplicaAdminPassword = "replica-admin-password"
	FlagTimeout              = "timeout"
)

// set of environment keys, resolved with the MONGO_BOOTSTRAP_ prefix
const (
	EnvAdminPassword        = "admin_password"
	EnvReplicaAdminPassword = "replica_admin_password"
)

var (
	flagPlan = flags.Meta{
		Name: FlagPlan,
		Usage: flags.Usage{
			Description: "Specify a YAML plan file describing the database, usernames and roles to bootstrap",
			Note:        "passwords are never read from the plan file",
		},
	}

	flagAdminUsername = flags.Meta{
		Name: FlagAdminUsername,
		Usage: flags.Usage{
			Description:  "Specify the username of the user administrator",
			DefaultValue: bootstrap.DefaultAdminUsername,
		},
	}

	flagAdminPassword = flags.Meta{
		Name: FlagAdminPassword,
		Usage: flags.Usage{
			Description: "Specify the password of the user administrator",
			Note:        "falls back to MONGO_BOOTSTRAP_ADMIN_PASSWORD, then a prompt",
		},
	}

	flagReplicaAdminUsername = flags.Meta{
		Name: FlagReplicaAdminUsername,
		Usage: flags.Usage{
			Description:  "Specify the username of the cluster administrator",
			DefaultValue: bootstrap.DefaultReplicaAdminUsername,
		},
	}

	flagReplicaAdminPassword = flags.Meta{
		Name: FlagReplicaAdminPassword,
		Usage: flags.Usage{
			Description: "Specify the password of the cluster administrator",
			Note:        "falls back to MONGO_BOOTSTRAP_REPLICA_ADMIN_PASSWORD, then a prompt",
		},
	}

	flagTimeout = flags.Meta{
		Name: FlagTimeout,
		Usage: flags.Usage{
			Description:  "Specify how long to wait for the deployment to respond",
			DefaultValue: mongodb.DefaultTimeout.String(),
		},
	}
)

// TimeoutFlag returns the flag setting how long to wait for the deployment
func TimeoutFlag(value *time.Duration) flags.Flag {
	return flags.DurationFlag{Meta: flagTimeout, Value: value, DefaultValue: mongodb.DefaultTimeout}
}
