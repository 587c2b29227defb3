package terminal

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	logFieldDocs = "docs"
)

var (
	documentsFields = []string{logFieldMessage, logFieldDocs}
)

// documents are command documents printed as relaxed extended JSON, one per line
type documents struct {
	message string
	docs    []bson.D
}

func (d documents) Message() (string, error) {
	rows := make([]string, 0, len(d.docs)+1)
	rows = append(rows, d.message)

	rendered, err := d.render()
	if err != nil {
		return "", err
	}
	for _, doc := range rendered {
		rows = append(rows, Indent+string(doc))
	}
	return strings.Join(rows, "\n"), nil
}

func (d documents) Payload() ([]string, map[string]interface{}, error) {
	rendered, err := d.render()
	if err != nil {
		return nil, nil, err
	}
	return documentsFields, map[string]interface{}{
		logFieldMessage: d.message,
		logFieldDocs:    rendered,
	}, nil
}

func (d documents) render() ([]json.RawMessage, error) {
	rendered := make([]json.RawMessage, 0, len(d.docs))
	for i, doc := range d.docs {
		data, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return nil, fmt.Errorf("failed to render document %d: %w", i+1, err)
		}
		rendered = append(rendered, data)
	}
	return rendered, nil
}
