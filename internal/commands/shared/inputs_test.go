package shared

import (
	"testing"
	"time"

	"github.com/10gen/mongo-bootstrap/internal/bootstrap"
	"github.com/10gen/mongo-bootstrap/internal/mongodb"
	"github.com/10gen/mongo-bootstrap/internal/utils/flags"
	"github.com/10gen/mongo-bootstrap/internal/utils/test/mock"

	"github.com/Netflix/go-expect"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanInputsFlags(t *testing.T) {
	t.Run("Should register only the password flags the policy calls for", func(t *testing.T) {
		var i PlanInputs
		fs := pflag.NewFlagSet("verify", pflag.ContinueOnError)
		i.Flags(fs, PasswordsAdmin)

		assert.NotNil(t, fs.Lookup(FlagReplicaAdminUsername))
		assert.NotNil(t, fs.Lookup(FlagAdminPassword))
		assert.Nil(t, fs.Lookup(FlagReplicaAdminPassword))
		assert.Equal(t, mongodb.DefaultTimeout, i.Timeout)
	})

	t.Run("Should parse the flags", func(t *testing.T) {
		var i PlanInputs
		fs := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
		i.Flags(fs, PasswordsAll)

		require.Nil(t, fs.Parse([]string{
			"--plan", "plan.yaml",
			"--admin-username", "root",
			"--admin-password", "rootPassword",
			"--replica-admin-username", "ops",
			"--replica-admin-password", "opsPassword",
			"--timeout", "30s",
		}))

		assert.Equal(t, PlanInputs{
			PlanFile:             "plan.yaml",
			AdminUsername:        "root",
			AdminPassword:        "rootPassword",
			ReplicaAdminUsername: "ops",
			ReplicaAdminPassword: "opsPassword",
			Timeout:              30 * time.Second,
		}, i)
	})
}

func TestPlanInputsResolve(t *testing.T) {
	t.Run("Should not prompt when every password is provided", func(t *testing.T) {
		profile := mock.NewProfile(t)
		_, ui := mock.NewUI()

		i := PlanInputs{AdminPassword: "michaelPassword", ReplicaAdminPassword: "replicaAdminPassword"}
		require.Nil(t, i.Resolve(profile, ui, PasswordsAll))

		expected := bootstrap.DefaultPlan()
		expected.Admin.Password = "michaelPassword"
		expected.ReplicaAdmin.Password = "replicaAdminPassword"
		assert.Equal(t, expected, i.Plan())
	})

	t.Run("Should not look for passwords when none are needed", func(t *testing.T) {
		profile := mock.NewProfile(t)
		_, ui := mock.NewUI()

		i := PlanInputs{AdminUsername: "root"}
		require.Nil(t, i.Resolve(profile, ui, PasswordsNone))

		assert.Equal(t, "root", i.Plan().Admin.Username)
		assert.Equal(t, "", i.Plan().Admin.Password)
	})

	t.Run("Should resolve passwords from the environment", func(t *testing.T) {
		t.Setenv("MONGO_BOOTSTRAP_ADMIN_PASSWORD", "envAdminPassword")
		t.Setenv("MONGO_BOOTSTRAP_REPLICA_ADMIN_PASSWORD", "envReplicaAdminPassword")

		profile := mock.NewProfile(t)
		_, ui := mock.NewUI()

		i := PlanInputs{}
		require.Nil(t, i.Resolve(profile, ui, PasswordsAll))

		assert.Equal(t, "envAdminPassword", i.Plan().Admin.Password)
		assert.Equal(t, "envReplicaAdminPassword", i.Plan().ReplicaAdmin.Password)
	})

	t.Run("Should prefer the flag over the environment", func(t *testing.T) {
		t.Setenv("MONGO_BOOTSTRAP_ADMIN_PASSWORD", "envAdminPassword")

		profile := mock.NewProfile(t)
		_, ui := mock.NewUI()

		i := PlanInputs{AdminPassword: "flagAdminPassword"}
		require.Nil(t, i.Resolve(profile, ui, PasswordsAdmin))

		assert.Equal(t, "flagAdminPassword", i.Plan().Admin.Password)
	})

	t.Run("Should load the plan file and apply the username flags on top", func(t *testing.T) {
		profile := mock.NewProfile(t)
		require.Nil(t, afero.WriteFile(profile.Fs(), "/plan.yaml", []byte("database: ops\nadmin:\n  username: opsAdmin\n"), 0600))
		_, ui := mock.NewUI()

		i := PlanInputs{PlanFile: "/plan.yaml", ReplicaAdminUsername: "opsCluster"}
		require.Nil(t, i.Resolve(profile, ui, PasswordsNone))

		assert.Equal(t, "ops", i.Plan().Database)
		assert.Equal(t, "opsAdmin", i.Plan().Admin.Username)
		assert.Equal(t, "opsCluster", i.Plan().ReplicaAdmin.Username)
	})

	t.Run("Should fail when the usernames collide", func(t *testing.T) {
		profile := mock.NewProfile(t)
		_, ui := mock.NewUI()

		i := PlanInputs{ReplicaAdminUsername: "michael"}
		err := i.Resolve(profile, ui, PasswordsNone)
		assert.Equal(t, `admin and replica admin accounts must have different usernames, both are "michael"`, err.Error())
	})

	for _, tc := range []struct {
		description string
		inputs      PlanInputs
		procedure   func(c *expect.Console)
		test        func(t *testing.T, i PlanInputs)
	}{
		{
			description: "with no passwords set",
			procedure: func(c *expect.Console) {
				c.ExpectString("Password for michael")
				c.SendLine("michaelPassword")
				c.ExpectString("Password for replicaAdmin")
				c.SendLine("replicaAdminPassword")
				c.ExpectEOF()
			},
			test: func(t *testing.T, i PlanInputs) {
				assert.Equal(t, "michaelPassword", i.Plan().Admin.Password)
				assert.Equal(t, "replicaAdminPassword", i.Plan().ReplicaAdmin.Password)
			},
		},
		{
			description: "with only the admin password set",
			inputs:      PlanInputs{AdminPassword: "michaelPassword", ReplicaAdminUsername: "ops"},
			procedure: func(c *expect.Console) {
				c.ExpectString("Password for ops")
				c.SendLine("opsPassword")
				c.ExpectEOF()
			},
			test: func(t *testing.T, i PlanInputs) {
				assert.Equal(t, "michaelPassword", i.Plan().Admin.Password)
				assert.Equal(t, "opsPassword", i.Plan().ReplicaAdmin.Password)
			},
		},
	} {
		t.Run("Should prompt for passwords "+tc.description, func(t *testing.T) {
			profile := mock.NewProfile(t)

			_, console, ui, err := mock.NewConsole()
			require.Nil(t, err)
			defer console.Close()

			doneCh := make(chan struct{})
			go func() {
				defer close(doneCh)
				tc.procedure(console)
			}()

			inputs := tc.inputs
			assert.Nil(t, inputs.Resolve(profile, ui, PasswordsAll))

			console.Tty().Close() // flush the writers
			<-doneCh              // wait for procedure to complete

			tc.test(t, inputs)
		})
	}
}

func TestPlanInputsConnectOptions(t *testing.T) {
	profile := mock.NewProfile(t)
	profile.Flags.URI = "mongodb://db0:27017"
	profile.Flags.Direct = true

	i := PlanInputs{Timeout: time.Minute}
	assert.Equal(t, mongodb.ConnectOptions{
		URI:     "mongodb://db0:27017",
		Direct:  true,
		Timeout: time.Minute,
	}, i.ConnectOptions(profile))
}

func TestPlanInputsArgs(t *testing.T) {
	assert.Nil(t, PlanInputs{AdminPassword: "secret"}.Args())

	i := PlanInputs{PlanFile: "plan.yaml", ReplicaAdminUsername: "ops"}
	assert.Equal(t, []flags.Arg{
		{Name: FlagPlan, Value: "plan.yaml"},
		{Name: FlagReplicaAdminUsername, Value: "ops"},
	}, i.Args())
}
