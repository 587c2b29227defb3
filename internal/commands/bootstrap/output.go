package bootstrap

import (
	"fmt"

	"github.com/10gen/mongo-bootstrap/internal/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/terminal"

	"github.com/fatih/color"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	headerStep    = "Step"
	headerStatus  = "Status"
	headerDetails = "Details"
)

var statusColors = map[bootstrap.Status]color.Attribute{
	bootstrap.StatusOK:      color.FgGreen,
	bootstrap.StatusFailed:  color.FgRed,
	bootstrap.StatusSkipped: color.FgYellow,
}

func resultsLog(results []bootstrap.StepResult) terminal.Log {
	rows := make([]map[string]interface{}, 0, len(results))
	for i, result := range results {
		rows = append(rows, map[string]interface{}{
			headerStep:    fmt.Sprintf("%d. %s", i+1, result.Step),
			headerStatus:  terminal.Styled{Value: result.Status, Attributes: []color.Attribute{statusColors[result.Status]}},
			headerDetails: result.Err,
		})
	}
	return terminal.NewTableLog("Bootstrap results", []string{headerStep, headerStatus, headerDetails}, rows...)
}

func previewLog(plan bootstrap.Plan, uri string) terminal.Log {
	commands := bootstrap.Preview(plan)

	docs := make([]bson.D, 0, len(commands))
	for _, command := range commands {
		docs = append(docs, command.Document)
	}
	return terminal.NewDocumentLog(
		fmt.Sprintf("The following commands would run against %s", mongodb.RedactURI(uri)),
		docs...,
	)
}
