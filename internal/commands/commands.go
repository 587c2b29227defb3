package commands

import (
	"github.com/10gen/mongo-bootstrap/internal/cli"
	"github.com/10gen/mongo-bootstrap/internal/commands/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/commands/ping"
	"github.com/10gen/mongo-bootstrap/internal/commands/verify"
)

// set of commands
var (
	Bootstrap = cli.CommandDefinition{
		CommandMeta: bootstrap.CommandMeta,
		Command:     &bootstrap.Command{},
	}

	Verify = cli.CommandDefinition{
		CommandMeta: verify.CommandMeta,
		Command:     &verify.Command{},
	}

	Ping = cli.CommandDefinition{
		CommandMeta: ping.CommandMeta,
		Command:     &ping.Command{},
	}
)
