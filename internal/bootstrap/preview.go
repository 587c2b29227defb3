package bootstrap

import (
	"github.com/10gen/mongo-bootstrap/internal/mongodb"

	"go.mongodb.org/mongo-driver/bson"
)

const redactedPassword = "*****"

// Command is the command document a bootstrap step emits
type Command struct {
	Step     Step
	Document bson.D
}

// Preview renders the plan as the commands the bootstrap sequence emits,
// with passwords redacted
func Preview(plan Plan) []Command {
	steps := plan.Steps()
	commands := make([]Command, 0, len(steps))
	for _, step := range steps {
		commands = append(commands, Command{step, stepDocument(step)})
	}
	return commands
}

func stepDocument(step Step) bson.D {
	switch step.Kind {
	case StepUse:
		return bson.D{{Key: "use", Value: step.Database}}
	case StepCreateUser:
		user := step.User
		user.Password = redactedPassword
		return mongodb.CreateUserCommand(user)
	case StepAuth:
		return bson.D{
			{Key: "username", Value: step.User.Name},
			{Key: "password", Value: redactedPassword},
		}
	}
	return nil
}

// String renders the command document as relaxed extended JSON
func (c Command) String() string {
	data, err := bson.MarshalExtJSON(c.Document, false, false)
	if err != nil {
		return c.Step.String()
	}
	return string(data)
}
