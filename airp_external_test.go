package json5parser_airp_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/andreyvit/diff"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/titanous/json5"

	airp "github.com/d1ced/json5parser_airp"
)

func TestParseDocument(t *testing.T) {
	v, err := airp.Parse(`{a: 1, b: [true, null, 'x',], // note
	}`, nil)
	require.NoError(t, err)
	assert.Equal(t, airp.Object, v.Type())
	assert.Equal(t, []string{"a", "b"}, v.Keys())

	a, err := v.GetChild("a")
	require.NoError(t, err)
	d, ok := a.Number()
	require.True(t, ok)
	assert.True(t, d.Identical(airp.FromInt64(1)))

	b, err := v.GetChild("b")
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())
	want := airp.ArrayValue(airp.BoolValue(true), airp.NullValue(), airp.StringValue("x"))
	assert.True(t, airp.EqValue(want, b))
}

func TestFile(t *testing.T) {
	f, err := os.Open("testfiles/web-app.json5")
	require.NoError(t, err)
	defer f.Close()

	v, err := airp.NewJSON5(f)
	require.NoError(t, err)
	assert.Equal(t, 29, v.Total())
	assert.Equal(t, 5, v.Depth())

	name, err := v.GetChild("web-app.servlet.1.servlet-name")
	require.NoError(t, err)
	s, _ := name.Str()
	assert.Equal(t, "cofaxEmail", s)

	params, err := v.GetChild("web-app.servlet.2.init-param")
	require.NoError(t, err)
	var buf bytes.Buffer
	for _, k := range params.Keys() {
		c, _ := params.Get(k)
		d, _ := c.Number()
		fmt.Fprintf(&buf, "%s = %s\n", k, d)
	}
	expected := `longId = 123456789012345678901234567890
maxSize = 1048576
ratio = 75e-2
threshold = 150
`
	if a, e := buf.String(), expected; a != e {
		t.Errorf("Result not as expected:\n%v", diff.LineDiff(e, a))
	}
}

func TestFileError(t *testing.T) {
	data, err := ioutil.ReadFile("testfiles/broken.json5")
	require.NoError(t, err)
	assert.False(t, airp.Valid(data))

	_, err = airp.Parse(string(data), nil)
	perr, ok := err.(*airp.ParseError)
	require.True(t, ok, "got %T", err)
	row, col := perr.Where()
	assert.Equal(t, 3, row)
	assert.Equal(t, 17, col)
	assert.Equal(t, `line 3, column 17: found ','; expected value after ',' (in Array)`, err.Error())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestNewJSON5ReadError(t *testing.T) {
	_, err := airp.NewJSON5(failingReader{})
	require.Error(t, err)
	assert.Equal(t, "reading JSON5 input: disk on fire", err.Error())
}

// fromStdJSON replaces the json.Number leaves of an encoding/json result
// with decimals.
func fromStdJSON(t *testing.T, v interface{}) interface{} {
	switch v := v.(type) {
	case json.Number:
		d, err := airp.Normalize(string(v))
		require.NoError(t, err, string(v))
		return d
	case []interface{}:
		for i := range v {
			v[i] = fromStdJSON(t, v[i])
		}
		return v
	case map[string]interface{}:
		for k, e := range v {
			v[k] = fromStdJSON(t, e)
		}
		return v
	default:
		return v
	}
}

func TestStdJSONAgreement(t *testing.T) {
	// every JSON document is JSON5 and must decode to the same tree
	docs := []string{
		`null`,
		`[]`,
		`{}`,
		`-0`,
		`1.50`,
		`1E+2`,
		`12345678901234567890123456789.000000000000000000001`,
		`"café 😀 \/ \" \\ \b\f\n\r\t"`,
		`"\ud800"`,
		`{"a": {"b": [1, 2.5, -3e-7, {"c": null}]}, "d": [true, false, "s"]}`,
		` [ [ [ ] ] , { } ] `,
		`{"a": 1, "a": 2}`,
	}
	cmpDecimal := cmp.Comparer(func(a, b airp.Decimal) bool { return a.Identical(b) })
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			dec := json.NewDecoder(strings.NewReader(doc))
			dec.UseNumber()
			var want interface{}
			require.NoError(t, dec.Decode(&want))
			want = fromStdJSON(t, want)

			v, err := airp.Parse(doc, nil)
			require.NoError(t, err)
			if d := cmp.Diff(want, v.Interface(), cmpDecimal); d != "" {
				t.Errorf("mismatch (-encoding/json +airp):\n%s", d)
			}
		})
	}
}

// toFloat mirrors the float64 leaves json5.Unmarshal produces.
func toFloat(v interface{}) interface{} {
	switch v := v.(type) {
	case airp.Decimal:
		f, _ := v.Rat().Float64()
		return f
	case []interface{}:
		for i := range v {
			v[i] = toFloat(v[i])
		}
		return v
	case map[string]interface{}:
		for k, e := range v {
			v[k] = toFloat(e)
		}
		return v
	default:
		return v
	}
}

func TestJSON5Agreement(t *testing.T) {
	docs := []string{
		`{"test": "value", /* comment */ }`,
		`{"test": "value", "another": 123,}`,
		`{test: "value", another: 123}`,
		`{'test': 'value'}`,
		"// header\n[1, 2.5, -3, 'x',]",
		"{a: [1, {b: 'c', }, ], /* x */ d: null}",
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			var want interface{}
			require.NoError(t, json5.Unmarshal([]byte(doc), &want))

			v, err := airp.Parse(doc, nil)
			require.NoError(t, err)
			if d := cmp.Diff(want, toFloat(v.Interface())); d != "" {
				t.Errorf("mismatch (-json5 +airp):\n%s", d)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	config := airp.ParseConfig{"allow_duplicates": true, "float": "yes"}
	assert.Empty(t, config.Recognized())

	with, err := airp.Parse("{a: 0.10}", config)
	require.NoError(t, err)
	without, err := airp.Parse("{a: 0.10}", nil)
	require.NoError(t, err)
	assert.True(t, airp.EqValue(with, without))
}

func TestParserMaxDepth(t *testing.T) {
	p := airp.Parser{MaxDepth: 3}
	_, err := p.Parse("[[[1]]]", nil)
	require.NoError(t, err)

	_, err = p.Parse("[[[[1]]]]", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, airp.ErrMaxDepth))

	deep := strings.Repeat("[", 10000) + strings.Repeat("]", 10000)
	v, err := airp.Parse(deep, nil)
	require.NoError(t, err)
	assert.Equal(t, 10000, v.Depth())
}

func TestGetChild(t *testing.T) {
	v, err := airp.Parse(`{a: [{b: 1}, 'leaf']}`, nil)
	require.NoError(t, err)

	self, err := v.GetChild("")
	require.NoError(t, err)
	assert.True(t, airp.EqValue(v, self))

	c, err := v.GetChild("a.0.b")
	require.NoError(t, err)
	assert.Equal(t, airp.Number, c.Type())

	tests := []struct {
		path  string
		cause error
		msg   string
	}{
		{"x", airp.ErrChildNotFound, "x: child not found"},
		{"a.2", airp.ErrChildNotFound, "a.2: child not found"},
		{"a.-1", airp.ErrChildNotFound, "a.-1: child not found"},
		{"a.one", airp.ErrChildNotFound, "a.one: child not found"},
		{"a.1.z", airp.ErrNotArrayOrObject, "a.1 is String: not array or object"},
	}
	for _, test := range tests {
		_, err := v.GetChild(test.path)
		require.Error(t, err, test.path)
		assert.Equal(t, test.cause, errors.Cause(err), test.path)
		assert.Equal(t, test.msg, err.Error(), test.path)
	}
}

func TestValueCopies(t *testing.T) {
	v, err := airp.Parse(`{list: [1, 2], obj: {k: 'v'}}`, nil)
	require.NoError(t, err)

	list, _ := v.Get("list")
	elems := list.Elems()
	elems[0] = airp.StringValue("changed")
	first, _ := list.Index(0)
	assert.Equal(t, airp.Number, first.Type())

	obj, _ := v.Get("obj")
	fields := obj.Fields()
	delete(fields, "k")
	assert.Equal(t, 1, obj.Len())

	src := map[string]airp.Value{"n": airp.NullValue()}
	built := airp.ObjectValue(src)
	src["m"] = airp.NullValue()
	assert.Equal(t, 1, built.Len())

	_, ok := list.Index(2)
	assert.False(t, ok)
	_, ok = list.Get("k")
	assert.False(t, ok)
	assert.Nil(t, obj.Elems())
	assert.Nil(t, list.Keys())
}

func TestUnmarshalJSON(t *testing.T) {
	var doc struct {
		Name    string     `json:"name"`
		Payload airp.Value `json:"payload"`
	}
	err := json.Unmarshal([]byte(`{"name": "n", "payload": {"price": 19.990}}`), &doc)
	require.NoError(t, err)
	assert.Equal(t, "n", doc.Name)

	price, err := doc.Payload.GetChild("price")
	require.NoError(t, err)
	d, _ := price.Number()
	assert.Equal(t, "19990e-3", d.String())

	var v airp.Value
	require.Error(t, v.UnmarshalText([]byte("{")))
	assert.Equal(t, airp.Error, v.Type())
}
