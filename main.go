package main

import (
	"fmt"
	"os"

	"github.com/buildkite/orffinder/clicommand"
	"github.com/buildkite/orffinder/version"
	"github.com/urfave/cli"
)

const appHelpTemplate = `Usage:

  {{.Name}} <command> [options...]

Available commands are:

  {{range .Commands}}{{.Name}}{{with .ShortName}}, {{.}}{{end}}{{ "\t" }}{{.Usage}}
  {{end}}
Use "{{.Name}} <command> --help" for more information about a command.

`

const commandHelpTemplate = `{{.Description}}

Options:

{{range .VisibleFlags}}  {{.}}
{{end}}`

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	cli.AppHelpTemplate = appHelpTemplate
	cli.CommandHelpTemplate = commandHelpTemplate

	app := newApp()

	if len(args) == 1 {
		cli.ShowAppHelp(cli.NewContext(app, nil, nil)) //nolint:errcheck // help output is best-effort
		return 1
	}

	return clicommand.PrintMessageAndReturnExitCode(app.Run(args))
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "orffinder"
	app.Usage = "Find the substrings of a genome between a start and an end"
	app.Version = version.FullVersion()
	app.ErrWriter = os.Stderr
	app.Commands = clicommand.OrffinderCommands
	app.ExitErrHandler = func(c *cli.Context, err error) {}
	app.CommandNotFound = func(c *cli.Context, command string) {
		cli.ShowAppHelp(c) //nolint:errcheck // help output is best-effort
		fmt.Fprintf(app.ErrWriter, "\n%s: '%s' is not a known command. See '%s --help'\n", app.Name, command, app.Name)
		os.Exit(1)
	}
	return app
}
