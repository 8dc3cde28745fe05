package main

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	airp "github.com/d1ced/json5parser_airp"
)

// checkCommand validates each file and reports the first syntax error.
type checkCommand struct {
	flags *parseFlags
	files *[]string
	out   io.Writer
}

func (cmd *checkCommand) run(c *kingpin.ParseContext) error {
	failed := 0
	for _, f := range *cmd.files {
		if err := cmd.check(f); err != nil {
			failed++
			color.New(color.FgRed).Fprintf(cmd.out, "%s: %v\n", f, err)
			continue
		}
		color.New(color.FgGreen).Fprintf(cmd.out, "%s: ok\n", f)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files are not valid JSON5", failed, len(*cmd.files))
	}
	return nil
}

func (cmd *checkCommand) check(name string) error {
	_, _, err := parseFile(cmd.flags, name)
	if perr, ok := err.(*airp.ParseError); ok {
		row, col := perr.Where()
		level.Error(logger).Log("msg", "invalid JSON5", "file", name, "line", row, "column", col, "err", err)
	} else if err != nil {
		level.Error(logger).Log("msg", "check failed", "file", name, "err", err)
	}
	return err
}

// parseFile reads and parses name. It returns the size of the file too.
func parseFile(flags *parseFlags, name string) (airp.Value, uint64, error) {
	data, err := ioutil.ReadFile(name)
	if err != nil {
		return airp.Value{}, 0, errors.Wrap(err, "failed to read file")
	}
	v, err := flags.parser().Parse(string(data), flags.config())
	if err != nil {
		return airp.Value{}, uint64(len(data)), err
	}
	return v, uint64(len(data)), nil
}

func addCheckCommand(app *kingpin.Application, flags *parseFlags) {
	cmd := &checkCommand{flags: flags, out: os.Stdout}
	check := app.Command("check", "Validate JSON5 files.").Action(cmd.run)
	cmd.files = check.Arg("file", "The files to check.").Required().ExistingFiles()
}
