package shared

import (
	"fmt"

	"github.com/10gen/mongo-bootstrap/internal/cli"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
)

// set of reference links
const (
	LinkAuthentication     = "https://www.mongodb.com/docs/manual/core/authentication/"
	LinkLocalhostException = "https://www.mongodb.com/docs/manual/core/localhost-exception/"
)

// ErrUserExists is returned when a user to be created already exists
type ErrUserExists struct {
	error
}

// Unwrap returns the underlying error
func (err ErrUserExists) Unwrap() error { return err.error }

// SuggestedCommands returns the commands to run instead
func (err ErrUserExists) SuggestedCommands() []string {
	return []string{fmt.Sprintf("%s verify", cli.Name)}
}

// ErrAuthFailed is returned when the deployment rejects the credentials
type ErrAuthFailed struct {
	error
}

// Unwrap returns the underlying error
func (err ErrAuthFailed) Unwrap() error { return err.error }

// ReferenceLinks returns links to learn more about the failure
func (err ErrAuthFailed) ReferenceLinks() []string {
	return []string{LinkAuthentication}
}

// ErrUnauthorized is returned when the deployment denies a command
type ErrUnauthorized struct {
	error
}

// Unwrap returns the underlying error
func (err ErrUnauthorized) Unwrap() error { return err.error }

// ReferenceLinks returns links to learn more about the failure
func (err ErrUnauthorized) ReferenceLinks() []string {
	return []string{LinkLocalhostException, LinkAuthentication}
}

// ClassifyErr attaches follow ups to the known deployment errors
func ClassifyErr(err error) error {
	switch {
	case err == nil:
		return nil
	case mongodb.IsUserExists(err):
		return ErrUserExists{err}
	case mongodb.IsAuthFailed(err):
		return ErrAuthFailed{err}
	case mongodb.IsUnauthorized(err):
		return ErrUnauthorized{err}
	}
	return err
}
