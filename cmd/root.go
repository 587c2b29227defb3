package cmd

import (
	"fmt"

	"github.com/10gen/mongo-bootstrap/internal/cli"
	"github.com/10gen/mongo-bootstrap/internal/commands"

	"github.com/spf13/cobra"
)

// Run runs the CLI and returns its exit code
func Run() int {
	// print commands in help/usage text in the order they are declared
	cobra.EnableCommandSorting = false

	cmd := &cobra.Command{
		Version:       cli.Version,
		Use:           cli.Name,
		Short:         "CLI tool to bootstrap the administrative users of a MongoDB deployment",
		Long:          fmt.Sprintf(`Use "%s [command] --help" for information on a specific command`, cli.Name),
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	factory := cli.NewCommandFactory()
	defer factory.Close()

	cobra.OnInitialize(factory.Setup)

	cmd.Flags().SortFlags = false // ensures CLI help text displays global flags unsorted
	factory.SetGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(factory.Build(commands.Bootstrap))
	cmd.AddCommand(factory.Build(commands.Verify))
	cmd.AddCommand(factory.Build(commands.Ping))

	return factory.Run(cmd)
}
