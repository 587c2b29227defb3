package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// Role is a role grant: a named role and the database it applies to
type Role struct {
	Role string `bson:"role" yaml:"role" json:"role"`
	DB   string `bson:"db" yaml:"db" json:"db"`
}

func (r Role) String() string {
	return fmt.Sprintf("%s@%s", r.Role, r.DB)
}

// User is a database user to be created
type User struct {
	Name     string
	Password string
	Roles    []Role
}

// UserInfo is a database user as reported by the usersInfo command
type UserInfo struct {
	Name  string `bson:"user"`
	DB    string `bson:"db"`
	Roles []Role `bson:"roles"`
}

// set of user management command names
const (
	CommandCreateUser = "createUser"
	CommandUsersInfo  = "usersInfo"
	CommandDropUser   = "dropUser"
)

// CreateUserCommand builds the createUser command document for the user
func CreateUserCommand(user User) bson.D {
	roles := make(bson.A, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, bson.D{
			{Key: "role", Value: role.Role},
			{Key: "db", Value: role.DB},
		})
	}

	return bson.D{
		{Key: CommandCreateUser, Value: user.Name},
		{Key: "pwd", Value: user.Password},
		{Key: "roles", Value: roles},
	}
}

// CreateUser creates the user in the database
func CreateUser(ctx context.Context, db Database, user User) error {
	if err := db.RunCommand(ctx, CreateUserCommand(user), nil); err != nil {
		return fmt.Errorf("failed to create user %q on %s: %w", user.Name, db.Name(), err)
	}
	return nil
}

// UsersInfoCommand builds the usersInfo command document listing every user of a database
func UsersInfoCommand() bson.D {
	return bson.D{{Key: CommandUsersInfo, Value: 1}}
}

// UsersInfo lists the users of the database
func UsersInfo(ctx context.Context, db Database) ([]UserInfo, error) {
	var reply struct {
		Users []UserInfo `bson:"users"`
	}
	if err := db.RunCommand(ctx, UsersInfoCommand(), &reply); err != nil {
		return nil, fmt.Errorf("failed to list users on %s: %w", db.Name(), err)
	}
	return reply.Users, nil
}

// DropUserCommand builds the dropUser command document for the named user
func DropUserCommand(name string) bson.D {
	return bson.D{{Key: CommandDropUser, Value: name}}
}

// DropUser removes the named user from the database
func DropUser(ctx context.Context, db Database, name string) error {
	if err := db.RunCommand(ctx, DropUserCommand(name), nil); err != nil {
		return fmt.Errorf("failed to drop user %q on %s: %w", name, db.Name(), err)
	}
	return nil
}
