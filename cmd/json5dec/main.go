// Command json5dec checks JSON5 documents and reports on their content
// with exact numbers.
package main

import (
	"os"
	"sort"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	airp "github.com/d1ced/json5parser_airp"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

// parseFlags are shared by the commands that parse documents.
type parseFlags struct {
	maxDepth *int
	options  *map[string]string
}

func (f *parseFlags) parser() airp.Parser {
	return airp.Parser{MaxDepth: *f.maxDepth}
}

func (f *parseFlags) config() airp.ParseConfig {
	config := make(airp.ParseConfig, len(*f.options))
	for k, v := range *f.options {
		config[k] = v
	}
	return config
}

func addParseFlags(app *kingpin.Application) *parseFlags {
	return &parseFlags{
		maxDepth: app.Flag("max-depth", "Maximum nesting of arrays and objects, 0 for unlimited.").Default("0").Int(),
		options:  app.Flag("option", "Parse option as key=value, may be repeated.").StringMap(),
	}
}

func levelOption(name string) level.Option {
	switch name {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

func main() {
	app := kingpin.New("json5dec", "Decode and inspect JSON5 documents.")
	logLevel := app.Flag("log.level", "Only log messages with the given severity or above.").
		Default("info").Enum("debug", "info", "warn", "error")
	flags := addParseFlags(app)
	app.PreAction(func(_ *kingpin.ParseContext) error {
		logger = level.NewFilter(logger, levelOption(*logLevel))
		if ignored := unknownOptions(flags.config()); len(ignored) > 0 {
			level.Warn(logger).Log("msg", "ignoring unknown parse options", "options", ignored)
		}
		return nil
	})

	addCheckCommand(app, flags)
	addStatsCommand(app, flags)
	addDecimalCommand(app)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

// unknownOptions lists the keys of config the parser does not act on.
func unknownOptions(config airp.ParseConfig) []string {
	known := make(map[string]bool)
	for _, k := range config.Recognized() {
		known[k] = true
	}
	var ss []string
	for k := range config {
		if !known[k] {
			ss = append(ss, k)
		}
	}
	sort.Strings(ss)
	return ss
}

func exitWithErr(err error) {
	level.Error(logger).Log("err", err)
	os.Exit(1)
}
