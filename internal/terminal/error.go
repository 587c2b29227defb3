package terminal

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	logFieldErr      = "err"
	logFieldCode     = "code"
	logFieldCodeName = "codeName"
)

var (
	errorMessageFields   = []string{logFieldErr}
	commandMessageFields = []string{logFieldErr, logFieldCode, logFieldCodeName}
)

type errorMessage struct {
	error
}

func (e errorMessage) Message() (string, error) {
	return e.Error(), nil
}

// Payload includes the server error code when the error came from a database command
func (e errorMessage) Payload() ([]string, map[string]interface{}, error) {
	var cmdErr mongo.CommandError
	if !errors.As(e.error, &cmdErr) {
		return errorMessageFields, map[string]interface{}{
			logFieldErr: e.Error(),
		}, nil
	}

	return commandMessageFields, map[string]interface{}{
		logFieldErr:      e.Error(),
		logFieldCode:     cmdErr.Code,
		logFieldCodeName: cmdErr.Name,
	}, nil
}
