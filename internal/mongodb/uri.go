package mongodb

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const redactedPassword = "*****"

// ValidateURI checks that the connection string can be parsed
func ValidateURI(uri string) error {
	if _, err := connstring.ParseAndValidate(uri); err != nil {
		return fmt.Errorf("invalid connection string: %w", err)
	}
	return nil
}

// RedactURI masks the password of a connection string, if it has one
func RedactURI(uri string) string {
	schemeEnd := strings.Index(uri, "://")
	if schemeEnd < 0 {
		return uri
	}
	prefix, rest := uri[:schemeEnd+3], uri[schemeEnd+3:]

	authority := rest
	if end := strings.IndexAny(rest, "/?"); end >= 0 {
		authority = rest[:end]
	}

	at := strings.LastIndex(authority, "@")
	if at < 0 {
		return uri
	}

	userinfo := authority[:at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return uri
	}

	return prefix + userinfo[:colon+1] + redactedPassword + rest[at:]
}
