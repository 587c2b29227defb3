package bootstrap

import (
	"context"
	"fmt"
	"sort"

	"github.com/10gen/mongo-bootstrap/internal/mongodb"
)

// RoleMismatch is a user whose role grants differ from the plan
type RoleMismatch struct {
	Username string
	Expected []mongodb.Role
	Actual   []mongodb.Role
}

// Report is the outcome of verifying a deployment against a plan
type Report struct {
	Database       string
	Users          []mongodb.UserInfo
	Missing        []string
	Unexpected     []string
	RoleMismatches []RoleMismatch
}

// OK reports whether the database holds exactly the plan's users with exactly the plan's roles
func (r Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Unexpected) == 0 && len(r.RoleMismatches) == 0
}

// Verify connects as the plan's admin account and compares the users of the plan's database to the plan.
// Without an admin password the connection is unauthenticated.
func Verify(ctx context.Context, connector mongodb.Connector, opts mongodb.ConnectOptions, plan Plan) (Report, error) {
	if err := plan.Validate(false); err != nil {
		return Report{}, err
	}

	if plan.Admin.Password != "" {
		opts = opts.WithCredential(plan.Admin.Username, plan.Admin.Password, plan.Database)
	}

	client, err := connector.Connect(ctx, opts)
	if err != nil {
		return Report{}, err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	users, err := mongodb.UsersInfo(ctx, client.Database(plan.Database))
	if err != nil {
		return Report{}, err
	}
	return Compare(plan, users), nil
}

// Compare compares the users of a database to the plan
func Compare(plan Plan, users []mongodb.UserInfo) Report {
	report := Report{Database: plan.Database, Users: users}

	expected := map[string][]mongodb.Role{
		plan.Admin.Username:        plan.Admin.Roles,
		plan.ReplicaAdmin.Username: plan.ReplicaAdmin.Roles,
	}

	found := map[string]bool{}
	for _, user := range users {
		roles, ok := expected[user.Name]
		if !ok {
			report.Unexpected = append(report.Unexpected, user.Name)
			continue
		}
		found[user.Name] = true
		if !sameRoles(roles, user.Roles) {
			report.RoleMismatches = append(report.RoleMismatches, RoleMismatch{user.Name, roles, user.Roles})
		}
	}

	for _, username := range []string{plan.Admin.Username, plan.ReplicaAdmin.Username} {
		if !found[username] {
			report.Missing = append(report.Missing, username)
		}
	}
	return report
}

func sameRoles(expected, actual []mongodb.Role) bool {
	if len(expected) != len(actual) {
		return false
	}
	e, a := sortedRoles(expected), sortedRoles(actual)
	for i := range e {
		if e[i] != a[i] {
			return false
		}
	}
	return true
}

func sortedRoles(roles []mongodb.Role) []mongodb.Role {
	sorted := make([]mongodb.Role, len(roles))
	copy(sorted, roles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].String() < sorted[j].String()
	})
	return sorted
}

// Summary describes the report findings
func (r Report) Summary() []string {
	var findings []string
	for _, username := range r.Missing {
		findings = append(findings, fmt.Sprintf("user %s is missing from %s", username, r.Database))
	}
	for _, username := range r.Unexpected {
		findings = append(findings, fmt.Sprintf("user %s is not part of the plan", username))
	}
	for _, m := range r.RoleMismatches {
		findings = append(findings, fmt.Sprintf("user %s has roles %v, expected %v", m.Username, m.Actual, m.Expected))
	}
	return findings
}
