package clicommand_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/buildkite/orffinder/clicommand"
	"github.com/urfave/cli"
)

// runApp runs args (without the program name) through an app holding every
// command, capturing what the command writes.
func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	app := cli.NewApp()
	app.Name = "orffinder"
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Commands = clicommand.OrffinderCommands
	app.ExitErrHandler = func(*cli.Context, error) {}
	app.CommandNotFound = func(c *cli.Context, command string) {
		t.Errorf("command not found: %s %v", command, c.Args())
	}

	err = app.Run(append([]string{"orffinder"}, args...))
	return out.String(), errOut.String(), err
}

// exitCode is the status main would exit with for err.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if eerr := new(clicommand.ExitError); errors.As(err, &eerr) {
		return eerr.Code()
	}
	return 1
}
