package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log/level"

	airp "github.com/d1ced/json5parser_airp"
)

// documentStats summarizes one parsed document.
type documentStats struct {
	Size     uint64
	Total    int
	Depth    int
	Keys     int
	Integers int
	Counts   map[airp.JSONType]int
}

// collectStats walks v without recursion.
func collectStats(v airp.Value) documentStats {
	stats := documentStats{
		Total:  v.Total(),
		Depth:  v.Depth(),
		Counts: make(map[airp.JSONType]int),
	}
	stack := []airp.Value{v}
	for len(stack) > 0 {
		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stats.Counts[m.Type()]++
		switch m.Type() {
		case airp.Number:
			if d, _ := m.Number(); d.IsInteger() {
				stats.Integers++
			}
		case airp.Array:
			stack = append(stack, m.Elems()...)
		case airp.Object:
			fields := m.Fields()
			stats.Keys += len(fields)
			for _, c := range fields {
				stack = append(stack, c)
			}
		}
	}
	return stats
}

// statsCommand prints stats for each JSON5 document in files.
type statsCommand struct {
	flags *parseFlags
	files *[]string
	out   io.Writer
}

func (cmd *statsCommand) run(c *kingpin.ParseContext) error {
	for _, f := range *cmd.files {
		v, size, err := parseFile(cmd.flags, f)
		if err != nil {
			level.Error(logger).Log("msg", "skipping file", "file", f, "err", err)
			continue
		}
		stats := collectStats(v)
		stats.Size = size
		cmd.printStats(f, stats)
	}
	return nil
}

func (cmd *statsCommand) printStats(name string, stats documentStats) {
	bold := color.New(color.Bold)
	bold.Fprintf(cmd.out, "%s:\n", name)
	fmt.Fprintf(cmd.out,
		"\tsize: %v, values: %s, depth: %d, keys: %s\n",
		humanize.Bytes(stats.Size),
		humanize.Comma(int64(stats.Total)),
		stats.Depth,
		humanize.Comma(int64(stats.Keys)),
	)
	fmt.Fprintf(cmd.out, "\tnumbers: %s, integral: %s\n",
		humanize.Comma(int64(stats.Counts[airp.Number])),
		humanize.Comma(int64(stats.Integers)),
	)
	for _, t := range []airp.JSONType{airp.Null, airp.Bool, airp.Number, airp.String, airp.Array, airp.Object} {
		if n := stats.Counts[t]; n > 0 {
			fmt.Fprintf(cmd.out, "\t\t%-8s %s\n", t, humanize.Comma(int64(n)))
		}
	}
}

func addStatsCommand(app *kingpin.Application, flags *parseFlags) {
	cmd := &statsCommand{flags: flags, out: os.Stdout}
	stats := app.Command("stats", "Print stats for JSON5 files.").Action(cmd.run)
	cmd.files = stats.Arg("file", "The files to summarize.").Required().ExistingFiles()
}
