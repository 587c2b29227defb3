package terminal

import (
	"fmt"
	"strings"
)

var (
	listFields = []string{logFieldMessage, logFieldData}
)

type list struct {
	message string
	data    []string
}

func newList(message string, data []interface{}) list {
	items := make([]string, 0, len(data))
	for _, item := range data {
		items = append(items, parseValue(item))
	}
	return list{message, items}
}

func (l list) Message() (string, error) {
	return fmt.Sprintf("%s\n%s", l.message, l.dataString()), nil
}

func (l list) Payload() ([]string, map[string]interface{}, error) {
	return listFields, map[string]interface{}{
		logFieldMessage: l.message,
		logFieldData:    l.data,
	}, nil
}

func (l list) dataString() string {
	rows := make([]string, len(l.data))
	for i, item := range l.data {
		rows[i] = Indent + item
	}
	return strings.Join(rows, "\n")
}
