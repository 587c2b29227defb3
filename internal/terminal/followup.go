package terminal

import (
	"errors"
	"fmt"
	"strings"
)

// set of follow up messages
const (
	MsgReferenceLinks    = "For more information"
	MsgSuggestedCommands = "Try running instead"
)

const (
	followUpSeparator = ", "
)

var (
	followUpFields = []string{logFieldMessage, logFieldData}
)

type followUpMessage struct {
	message   string
	followUps []string
}

// NewFollowUpMessage creates a new follow up message
func NewFollowUpMessage(message string, followUps []string) LogData {
	return followUpMessage{message, followUps}
}

func (fm followUpMessage) Message() (string, error) {
	if err := fm.validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: %s", fm.message, strings.Join(fm.followUps, followUpSeparator)), nil
}

func (fm followUpMessage) Payload() ([]string, map[string]interface{}, error) {
	if err := fm.validate(); err != nil {
		return nil, nil, err
	}
	return followUpFields, map[string]interface{}{
		logFieldMessage: fm.message,
		logFieldData:    fm.followUps,
	}, nil
}

func (fm followUpMessage) validate() error {
	if fm.message == "" {
		return errors.New("cannot create a follow up without a message")
	}
	if len(fm.followUps) == 0 {
		return errors.New("cannot create a follow up without any items")
	}
	return nil
}
