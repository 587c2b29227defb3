package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/10gen/mongo-bootstrap/internal/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoConnector is a mocked connector
type MongoConnector struct {
	ConnectFn func(ctx context.Context, opts mongodb.ConnectOptions) (mongodb.Client, error)
}

// Connect calls the mocked Connect implementation
func (c MongoConnector) Connect(ctx context.Context, opts mongodb.ConnectOptions) (mongodb.Client, error) {
	return c.ConnectFn(ctx, opts)
}

// MongoCommand is a command received by the mock server
type MongoCommand struct {
	DB         string
	Command    bson.D
	Credential *mongodb.Credential
}

// Name returns the command name
func (c MongoCommand) Name() string {
	if len(c.Command) == 0 {
		return ""
	}
	return c.Command[0].Key
}

// MongoServer is an in-memory deployment supporting the user management commands.
// With AuthEnabled set it enforces access control, allowing unauthenticated
// clients to create the first user only.
type MongoServer struct {
	AuthEnabled bool
	ConnectErr  error
	CommandErrs map[string]error

	mu          sync.Mutex
	dbs         map[string][]mongodb.User
	connections []mongodb.ConnectOptions
	commands    []MongoCommand
	disconnects int
}

// NewMongoServer creates a new, empty mock server
func NewMongoServer() *MongoServer {
	return &MongoServer{dbs: map[string][]mongodb.User{}}
}

// set of server errors returned by the mock server
var (
	errMongoAuthFailed = mongo.CommandError{Code: 18, Name: "AuthenticationFailed", Message: "Authentication failed."}
)

// AddUser stores the user in the database without recording a command
func (s *MongoServer) AddUser(db string, user mongodb.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dbs[db] = append(s.dbs[db], user)
}

// Users returns the users of the database in creation order
func (s *MongoServer) Users(db string) []mongodb.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mongodb.User(nil), s.dbs[db]...)
}

// Connections returns the options of every connection attempt
func (s *MongoServer) Connections() []mongodb.ConnectOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mongodb.ConnectOptions(nil), s.connections...)
}

// Commands returns every command received
func (s *MongoServer) Commands() []MongoCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]MongoCommand(nil), s.commands...)
}

// Disconnects returns the number of clients disconnected
func (s *MongoServer) Disconnects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disconnects
}

// Connect opens a client to the mock server
func (s *MongoServer) Connect(ctx context.Context, opts mongodb.ConnectOptions) (mongodb.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.connections = append(s.connections, opts)
	if s.ConnectErr != nil {
		return nil, s.ConnectErr
	}

	if cred := opts.Credential; cred != nil {
		authSource := cred.AuthSource
		if authSource == "" {
			authSource = mongodb.DefaultAuthSource
		}
		user, ok := s.findUser(authSource, cred.Username)
		if !ok || user.Password != cred.Password {
			return nil, fmt.Errorf("failed to connect to %s: %w", mongodb.RedactURI(opts.URI), errMongoAuthFailed)
		}
	}
	return &mongoClient{s, opts.Credential}, nil
}

func (s *MongoServer) findUser(db, name string) (mongodb.User, bool) {
	for _, user := range s.dbs[db] {
		if user.Name == name {
			return user, true
		}
	}
	return mongodb.User{}, false
}

func (s *MongoServer) userCount() int {
	var n int
	for _, users := range s.dbs {
		n += len(users)
	}
	return n
}

func (s *MongoServer) authorize(db string, cred *mongodb.Credential, name string) error {
	if !s.AuthEnabled {
		return nil
	}

	if cred == nil {
		if name == mongodb.CommandCreateUser && s.userCount() == 0 {
			return nil
		}
		return mongo.CommandError{Code: 13, Name: "Unauthorized", Message: fmt.Sprintf("command %s requires authentication", name)}
	}

	authSource := cred.AuthSource
	if authSource == "" {
		authSource = mongodb.DefaultAuthSource
	}
	user, _ := s.findUser(authSource, cred.Username)
	for _, role := range user.Roles {
		switch role {
		case mongodb.Role{Role: "root", DB: "admin"},
			mongodb.Role{Role: "userAdminAnyDatabase", DB: "admin"},
			mongodb.Role{Role: "userAdmin", DB: db}:
			return nil
		}
	}
	return mongo.CommandError{Code: 13, Name: "Unauthorized", Message: fmt.Sprintf("not authorized on %s to execute command { %s }", db, name)}
}

func (s *MongoServer) runCommand(db string, cred *mongodb.Credential, cmd interface{}, result interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := cmd.(bson.D)
	if !ok || len(doc) == 0 {
		return mongo.CommandError{Code: 9, Name: "FailedToParse", Message: "command must be a non-empty document"}
	}

	command := MongoCommand{db, doc, cred}
	s.commands = append(s.commands, command)

	name := command.Name()
	if err, ok := s.CommandErrs[name]; ok {
		return err
	}
	if err := s.authorize(db, cred, name); err != nil {
		return err
	}

	switch name {
	case mongodb.CommandCreateUser:
		return s.createUser(db, doc)
	case mongodb.CommandUsersInfo:
		return s.usersInfo(db, result)
	case mongodb.CommandDropUser:
		return s.dropUser(db, doc)
	}
	return mongo.CommandError{Code: 59, Name: "CommandNotFound", Message: fmt.Sprintf("no such command: '%s'", name)}
}

func (s *MongoServer) createUser(db string, doc bson.D) error {
	user := mongodb.User{Roles: []mongodb.Role{}}
	for _, e := range doc {
		switch e.Key {
		case mongodb.CommandCreateUser:
			user.Name, _ = e.Value.(string)
		case "pwd":
			user.Password, _ = e.Value.(string)
		case "roles":
			roles, _ := e.Value.(bson.A)
			for _, r := range roles {
				var role mongodb.Role
				for _, field := range r.(bson.D) {
					switch field.Key {
					case "role":
						role.Role, _ = field.Value.(string)
					case "db":
						role.DB, _ = field.Value.(string)
					}
				}
				user.Roles = append(user.Roles, role)
			}
		}
	}

	if _, ok := s.findUser(db, user.Name); ok {
		return mongo.CommandError{Code: 51003, Name: "Location51003", Message: fmt.Sprintf("User \"%s@%s\" already exists", user.Name, db)}
	}
	s.dbs[db] = append(s.dbs[db], user)
	return nil
}

func (s *MongoServer) usersInfo(db string, result interface{}) error {
	users := bson.A{}
	for _, user := range s.dbs[db] {
		roles := bson.A{}
		for _, role := range user.Roles {
			roles = append(roles, bson.D{{Key: "role", Value: role.Role}, {Key: "db", Value: role.DB}})
		}
		users = append(users, bson.D{
			{Key: "_id", Value: db + "." + user.Name},
			{Key: "user", Value: user.Name},
			{Key: "db", Value: db},
			{Key: "roles", Value: roles},
		})
	}

	if result == nil {
		return nil
	}
	raw, err := bson.Marshal(bson.D{{Key: "users", Value: users}, {Key: "ok", Value: 1.0}})
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, result)
}

func (s *MongoServer) dropUser(db string, doc bson.D) error {
	name, _ := doc[0].Value.(string)
	users := s.dbs[db]
	for i, user := range users {
		if user.Name == name {
			s.dbs[db] = append(users[:i:i], users[i+1:]...)
			return nil
		}
	}
	return mongo.CommandError{Code: 11, Name: "UserNotFound", Message: fmt.Sprintf("User '%s@%s' not found", name, db)}
}

type mongoClient struct {
	server     *MongoServer
	credential *mongodb.Credential
}

func (c *mongoClient) Database(name string) mongodb.Database {
	return mongoDatabase{c, name}
}

func (c *mongoClient) Ping(ctx context.Context) error {
	return nil
}

func (c *mongoClient) Disconnect(ctx context.Context) error {
	c.server.mu.Lock()
	defer c.server.mu.Unlock()
	c.server.disconnects++
	return nil
}

type mongoDatabase struct {
	client *mongoClient
	name   string
}

func (db mongoDatabase) Name() string {
	return db.name
}

func (db mongoDatabase) RunCommand(ctx context.Context, cmd interface{}, result interface{}) error {
	return db.client.server.runCommand(db.name, db.client.credential, cmd, result)
}
