package bootstrap

import (
	"testing"

	"github.com/10gen/mongo-bootstrap/internal/mongodb"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPlan(t *testing.T) {
	for _, tc := range []struct {
		description string
		contents    string
		expected    func() Plan
	}{
		{
			description: "an empty file as the default plan",
			contents:    "",
			expected:    DefaultPlan,
		},
		{
			description: "a partial file on top of the default plan",
			contents: `admin:
  username: root
`,
			expected: func() Plan {
				plan := DefaultPlan()
				plan.Admin.Username = "root"
				return plan
			},
		},
		{
			description: "a complete file",
			contents: `database: users
admin:
  username: userAdmin
  roles:
    - role: userAdmin
      db: users
replica_admin:
  username: clusterOps
  roles:
    - role: clusterManager
      db: admin
    - role: clusterMonitor
      db: admin
`,
			expected: func() Plan {
				return Plan{
					Database: "users",
					Admin: Account{
						Username: "userAdmin",
						Roles:    []mongodb.Role{{Role: "userAdmin", DB: "users"}},
					},
					ReplicaAdmin: Account{
						Username: "clusterOps",
						Roles: []mongodb.Role{
							{Role: "clusterManager", DB: "admin"},
							{Role: "clusterMonitor", DB: "admin"},
						},
					},
				}
			},
		},
	} {
		t.Run("Should load "+tc.description, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.Nil(t, afero.WriteFile(fs, "/plan.yaml", []byte(tc.contents), 0600))

			plan, err := LoadPlan(fs, "/plan.yaml")
			assert.Nil(t, err)
			assert.Equal(t, tc.expected(), plan)
		})
	}

	t.Run("Should fail when the file does not exist", func(t *testing.T) {
		_, err := LoadPlan(afero.NewMemMapFs(), "/missing.yaml")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "failed to read plan file")
	})

	t.Run("Should reject passwords in the file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.Nil(t, afero.WriteFile(fs, "/plan.yaml", []byte("admin:\n  password: hunter2\n"), 0600))

		_, err := LoadPlan(fs, "/plan.yaml")
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "failed to parse plan file /plan.yaml")
		assert.Contains(t, err.Error(), "field password not found")
	})

	t.Run("Should reject an invalid plan", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.Nil(t, afero.WriteFile(fs, "/plan.yaml", []byte("replica_admin:\n  username: michael\n"), 0600))

		_, err := LoadPlan(fs, "/plan.yaml")
		assert.NotNil(t, err)
		assert.Equal(t, `invalid plan file /plan.yaml: admin and replica admin accounts must have different usernames, both are "michael"`, err.Error())
	})
}

func TestWritePlan(t *testing.T) {
	fs := afero.NewMemMapFs()

	plan := testPlan()
	require.Nil(t, WritePlan(fs, "/plan.yaml", plan))

	data, err := afero.ReadFile(fs, "/plan.yaml")
	require.Nil(t, err)
	assert.NotContains(t, string(data), "Password")

	loaded, err := LoadPlan(fs, "/plan.yaml")
	require.Nil(t, err)
	assert.Equal(t, DefaultPlan(), loaded)
}
