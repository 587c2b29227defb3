package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/10gen/mongo-bootstrap/internal/mongodb"
)

// Status is the outcome of a bootstrap step
type Status string

// set of bootstrap step statuses
const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// StepResult is the outcome of running a bootstrap step
type StepResult struct {
	Step   Step
	Status Status
	Err    error
}

// StepError is the error of the bootstrap step that failed
type StepError struct {
	Step Step
	Err  error
}

func (err StepError) Error() string {
	return fmt.Sprintf("bootstrap failed at %s: %s", err.Step, err.Err)
}

// Unwrap returns the underlying error
func (err StepError) Unwrap() error {
	return err.Err
}

// Observer is notified of every step result as it completes
type Observer func(result StepResult)

// Runner runs the bootstrap sequence against a deployment
type Runner struct {
	Connector mongodb.Connector
	Options   mongodb.ConnectOptions
	Observer  Observer
}

// Run runs the bootstrap sequence for the plan.
// It stops at the first failing step, reporting the remaining steps as skipped,
// and returns the failure as a *StepError.
func (r Runner) Run(ctx context.Context, plan Plan) ([]StepResult, error) {
	if err := plan.Validate(true); err != nil {
		return nil, err
	}
	if r.Connector == nil {
		return nil, errors.New("bootstrap runner requires a connector")
	}

	s := session{connector: r.Connector, options: r.Options}
	defer s.close(ctx)

	steps := plan.Steps()
	results := make([]StepResult, 0, len(steps))

	var stepErr *StepError
	for _, step := range steps {
		result := StepResult{Step: step, Status: StatusSkipped}
		if stepErr == nil {
			if err := s.run(ctx, step); err != nil {
				stepErr = &StepError{step, err}
				result.Status, result.Err = StatusFailed, err
			} else {
				result.Status = StatusOK
			}
		}

		results = append(results, result)
		if r.Observer != nil {
			r.Observer(result)
		}
	}

	if stepErr != nil {
		return results, stepErr
	}
	return results, nil
}

type session struct {
	connector mongodb.Connector
	options   mongodb.ConnectOptions
	clients   []mongodb.Client
	db        mongodb.Database
}

func (s *session) run(ctx context.Context, step Step) error {
	switch step.Kind {
	case StepUse:
		return s.connect(ctx, step.Database, s.options)
	case StepCreateUser:
		if s.db == nil {
			return errors.New("no database selected")
		}
		return mongodb.CreateUser(ctx, s.db, step.User)
	case StepAuth:
		return s.connect(ctx, step.Database, s.options.WithCredential(step.User.Name, step.User.Password, step.Database))
	}
	return fmt.Errorf("unknown step: %s", step.Kind)
}

func (s *session) connect(ctx context.Context, database string, opts mongodb.ConnectOptions) error {
	client, err := s.connector.Connect(ctx, opts)
	if err != nil {
		return err
	}
	s.clients = append(s.clients, client)
	s.db = client.Database(database)
	return nil
}

func (s *session) close(ctx context.Context) {
	// disconnect even if the run was cancelled
	ctx = context.WithoutCancel(ctx)
	for _, client := range s.clients {
		client.Disconnect(ctx)
	}
}
