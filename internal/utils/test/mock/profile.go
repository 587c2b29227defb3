package mock

import (
	"testing"

	"github.com/10gen/mongo-bootstrap/internal/profile"

	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileDir is the directory mock CLI profiles are stored in
const ProfileDir = "/home/user/.config/mongo-bootstrap"

// NewProfile returns a new CLI profile with a random name
// stored on an in-memory filesystem
func NewProfile(t *testing.T) *profile.Profile {
	t.Helper()
	return profile.NewProfileAt(primitive.NewObjectID().Hex(), ProfileDir, afero.NewMemMapFs())
}
