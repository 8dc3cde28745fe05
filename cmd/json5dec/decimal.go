package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	airp "github.com/d1ced/json5parser_airp"
)

// decimalCommand decomposes numeric texts into sign, coefficient and
// exponent.
type decimalCommand struct {
	texts *[]string
	out   io.Writer
}

func (cmd *decimalCommand) run(c *kingpin.ParseContext) error {
	invalid := 0
	for _, text := range *cmd.texts {
		line, err := describeDecimal(text)
		if err != nil {
			invalid++
			color.New(color.FgRed).Fprintf(cmd.out, "%s\t%v\n", text, err)
			continue
		}
		fmt.Fprintln(cmd.out, line)
	}
	if invalid > 0 {
		return errors.Errorf("%d invalid decimals", invalid)
	}
	return nil
}

// describeDecimal renders the parts of text, followed by the shortest
// equivalent form when the exponent fits.
func describeDecimal(text string) (string, error) {
	d, err := airp.MakeDecimal(text)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("%s\tsign=%d coef=%d exp=%d", text, d.Sign(), d.Coefficient(), d.Exponent())
	if s, err := d.Shopspring(); err == nil {
		line += "\tvalue=" + s.String()
	}
	return line, nil
}

func addDecimalCommand(app *kingpin.Application) {
	cmd := &decimalCommand{out: os.Stdout}
	dec := app.Command("decimal", "Decompose numbers into exact decimal parts.").Action(cmd.run)
	cmd.texts = dec.Arg("text", "The numbers to decompose.").Required().Strings()
}
