package clicommand

import "github.com/urfave/cli"

var OrffinderCommands = []cli.Command{
	FindCommand,
	BatchCommand,
	ServeCommand,
	StatsCommand,
}
