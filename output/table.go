package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// Cell is a table value, optionally painted when rendered as a table.
type Cell struct {
	Text  string
	Color color.Attribute // zero means no color
}

func Text(s string) Cell {
	return Cell{Text: s}
}

// Value paints negative values red and positive values green.
func Value(text string, v decimal.Decimal) Cell {
	switch {
	case v.IsNegative():
		return Cell{Text: text, Color: color.FgRed}
	case v.IsPositive():
		return Cell{Text: text, Color: color.FgGreen}
	}
	return Cell{Text: text}
}

type Table struct {
	Columns []string
	Rows    [][]Cell
	Footer  [][]Cell
	Colors  bool
}

func NewTable(columns ...string) *Table {
	return &Table{
		Columns: columns,
		Colors:  !color.NoColor,
	}
}

func (t *Table) Add(cells ...Cell) {
	t.Rows = append(t.Rows, cells)
}

// AddFooter appends a row printed below the rows, after a separator.
func (t *Table) AddFooter(cells ...Cell) {
	t.Footer = append(t.Footer, cells)
}

func (t *Table) widths() []int {
	widths := make([]int, len(t.Columns))
	for i, column := range t.Columns {
		widths[i] = utf8.RuneCountInString(column)
	}

	measure := func(rows [][]Cell) {
		for _, row := range rows {
			for i, cell := range row {
				if i >= len(widths) {
					widths = append(widths, 0)
				}
				if n := utf8.RuneCountInString(cell.Text); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}
	measure(t.Rows)
	measure(t.Footer)

	return widths
}

func (t *Table) paint(cell Cell) string {
	if cell.Color == 0 {
		return cell.Text
	}

	c := color.New(cell.Color)
	if t.Colors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(cell.Text)
}

func (t *Table) line(w io.Writer, widths []int, cells []Cell) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		padding := widths[i] - utf8.RuneCountInString(cell.Text)
		parts[i] = t.paint(cell) + strings.Repeat(" ", padding)
	}

	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " | "), " "))
	return err
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	return strings.Join(parts, "-+-")
}

// Render writes the table with padded columns.
func (t *Table) Render(w io.Writer) error {
	widths := t.widths()

	header := make([]Cell, len(t.Columns))
	for i, column := range t.Columns {
		header[i] = Text(column)
	}

	err := t.line(w, widths, header)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, separator(widths))

	for _, row := range t.Rows {
		err := t.line(w, widths, row)
		if err != nil {
			return err
		}
	}

	if len(t.Footer) == 0 {
		return nil
	}

	fmt.Fprintln(w, separator(widths))
	for _, row := range t.Footer {
		err := t.line(w, widths, row)
		if err != nil {
			return err
		}
	}

	return nil
}

// RenderCsv writes the header and the rows as csv, without colors. Footer
// rows are left out.
func (t *Table) RenderCsv(w io.Writer) error {
	writer := csv.NewWriter(w)

	err := writer.Write(t.Columns)
	if err != nil {
		return err
	}

	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cell.Text
		}
		err := writer.Write(record)
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
