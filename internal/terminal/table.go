package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const (
	logFieldHeaders = "headers"
	logFieldData    = "data"
)

// set of exported spacing options
const (
	Indent = "  "
	Gutter = "  "
)

var (
	tableFields = []string{logFieldMessage, logFieldHeaders, logFieldData}
)

// Styled is a value printed with the provided color attributes in text output
type Styled struct {
	Value      interface{}
	Attributes []color.Attribute
}

func (s Styled) String() string {
	return parseValue(s.Value)
}

type column struct {
	header string
	width  int
}

type cell struct {
	text  string
	style *color.Color
}

type table struct {
	message string
	columns []column
	rows    [][]cell
}

func newTable(message string, headers []string, data []map[string]interface{}) table {
	t := table{message: message}
	if len(headers) == 0 {
		return t
	}

	t.columns = make([]column, len(headers))
	for i, header := range headers {
		t.columns[i] = column{header, len(header)}
	}

	for _, values := range data {
		if len(values) == 0 {
			continue
		}

		row := make([]cell, len(t.columns))
		for i, col := range t.columns {
			row[i] = newCell(values[col.header])
			if width := len(row[i].text); width > col.width {
				t.columns[i].width = width
			}
		}
		t.rows = append(t.rows, row)
	}
	return t
}

func newCell(value interface{}) cell {
	c := cell{text: parseValue(value)}
	if styled, ok := value.(Styled); ok && len(styled.Attributes) > 0 {
		c.style = color.New(styled.Attributes...)
	}
	return c
}

func (t table) Message() (string, error) {
	if err := t.validate(); err != nil {
		return "", err
	}

	lines := make([]string, 0, len(t.rows)+3)
	lines = append(lines, t.message, t.headerString(), t.dividerString())
	for _, row := range t.rows {
		lines = append(lines, t.rowString(row))
	}
	return strings.Join(lines, "\n"), nil
}

func (t table) Payload() ([]string, map[string]interface{}, error) {
	if err := t.validate(); err != nil {
		return nil, nil, err
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.header
	}

	data := make([]map[string]string, len(t.rows))
	for i, row := range t.rows {
		data[i] = make(map[string]string, len(row))
		for j, c := range row {
			data[i][t.columns[j].header] = c.text
		}
	}

	return tableFields, map[string]interface{}{
		logFieldMessage: t.message,
		logFieldHeaders: headers,
		logFieldData:    data,
	}, nil
}

func (t table) validate() error {
	if len(t.columns) == 0 {
		return errors.New("cannot create a table without headers")
	}
	return nil
}

func (t table) headerString() string {
	bold := color.New(color.Bold)

	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = pad(bold.Sprint(col.header), len(col.header), col.width)
	}
	return Indent + strings.Join(cells, Gutter)
}

func (t table) dividerString() string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = strings.Repeat("-", col.width)
	}
	return Indent + strings.Join(cells, Gutter)
}

func (t table) rowString(row []cell) string {
	cells := make([]string, len(row))
	for i, c := range row {
		text := c.text
		if c.style != nil {
			text = c.style.Sprint(c.text)
		}
		cells[i] = pad(text, len(c.text), t.columns[i].width)
	}
	return Indent + strings.Join(cells, Gutter)
}

// pad right-pads s, whose printed width is n, to the column width
func pad(s string, n, width int) string {
	return s + strings.Repeat(" ", width-n)
}

func parseValue(value interface{}) string {
	parsed := ""
	switch v := value.(type) {
	case nil: // leave zero-value
	case string:
		parsed = v
	case fmt.Stringer:
		parsed = v.String()
	case error:
		parsed = v.Error()
	default:
		parsed = fmt.Sprintf("%+v", v)
	}
	return parsed
}
