package mongodb

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// set of server error codes
const (
	codeUnauthorized         = 13
	codeAuthenticationFailed = 18
	codeUserExists           = 51003
)

// IsUserExists reports whether the error is the server rejecting a duplicate user
func IsUserExists(err error) bool {
	return hasCode(err, codeUserExists)
}

// IsUnauthorized reports whether the error is the server denying a command
func IsUnauthorized(err error) bool {
	return hasCode(err, codeUnauthorized)
}

// IsAuthFailed reports whether the error is an authentication failure
func IsAuthFailed(err error) bool {
	if hasCode(err, codeAuthenticationFailed) {
		return true
	}
	// handshake failures surface as connection errors rather than command errors
	return err != nil && strings.Contains(err.Error(), "AuthenticationFailed")
}

func hasCode(err error, code int32) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == code
	}
	return false
}
