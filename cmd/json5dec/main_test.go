package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	airp "github.com/d1ced/json5parser_airp"
)

func init() {
	color.NoColor = true
}

func noLimits() *parseFlags {
	depth := 0
	options := map[string]string{}
	return &parseFlags{maxDepth: &depth, options: &options}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectStats(t *testing.T) {
	v, err := airp.Parse(`{a: [1, 2.5, null], b: {c: true, d: 'x'}, e: 1.000}`, nil)
	require.NoError(t, err)

	stats := collectStats(v)
	assert.Equal(t, 9, stats.Total)
	assert.Equal(t, 2, stats.Depth)
	assert.Equal(t, 5, stats.Keys)
	assert.Equal(t, 2, stats.Integers)
	assert.Equal(t, map[airp.JSONType]int{
		airp.Object: 2,
		airp.Array:  1,
		airp.Number: 3,
		airp.Null:   1,
		airp.Bool:   1,
		airp.String: 1,
	}, stats.Counts)
}

func TestStatsCommand(t *testing.T) {
	good := writeFile(t, "good.json5", "// list\n[1, 2, 3,]")
	bad := writeFile(t, "bad.json5", "[1,,]")
	var out bytes.Buffer
	files := []string{good, bad}
	cmd := &statsCommand{flags: noLimits(), files: &files, out: &out}
	require.NoError(t, cmd.run(nil))

	assert.Equal(t, good+":\n"+
		"\tsize: 18 B, values: 4, depth: 1, keys: 0\n"+
		"\tnumbers: 3, integral: 3\n"+
		"\t\tNumber   3\n"+
		"\t\tArray    1\n", out.String())
}

func TestCheckCommand(t *testing.T) {
	good := writeFile(t, "good.json5", "{a: 'b'}")
	deep := writeFile(t, "deep.json5", "[[[]]]")
	var out bytes.Buffer
	files := []string{good, deep}
	flags := noLimits()
	*flags.maxDepth = 2
	cmd := &checkCommand{flags: flags, files: &files, out: &out}

	err := cmd.run(nil)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 files are not valid JSON5", err.Error())
	assert.Equal(t, good+": ok\n"+
		deep+": line 1, column 3: more than 2 nested arrays or objects: maximum nesting depth exceeded\n",
		out.String())
}

func TestDescribeDecimal(t *testing.T) {
	line, err := describeDecimal("-123.450")
	require.NoError(t, err)
	assert.Equal(t, "-123.450\tsign=-1 coef=123450 exp=-3\tvalue=-123.45", line)

	line, err = describeDecimal("1e9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, "1e9223372036854775807\tsign=1 coef=1 exp=9223372036854775807", line)

	_, err = describeDecimal("1,5")
	assert.Equal(t, airp.ErrInvalidDecimal, err)
}

func TestDecimalCommand(t *testing.T) {
	var out bytes.Buffer
	texts := []string{"0x10", "NaN"}
	cmd := &decimalCommand{texts: &texts, out: &out}
	err := cmd.run(nil)
	require.Error(t, err)
	assert.Equal(t, "1 invalid decimals", err.Error())
	assert.Equal(t, "0x10\tsign=1 coef=16 exp=0\tvalue=16\nNaN\tInvalid decimal\n", out.String())
}

func TestUnknownOptions(t *testing.T) {
	flags := noLimits()
	(*flags.options)["strict"] = "true"
	(*flags.options)["allow"] = "x"
	assert.Equal(t, []string{"allow", "strict"}, unknownOptions(flags.config()))
	assert.Empty(t, unknownOptions(airp.ParseConfig{}))
}
