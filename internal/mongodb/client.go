package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// set of connection defaults
const (
	DefaultAuthSource = "admin"
	DefaultTimeout    = 10 * time.Second
)

// Credential is the identity a client authenticates as
type Credential struct {
	Username   string
	Password   string
	AuthSource string
}

// ConnectOptions are the options used to connect to a deployment
type ConnectOptions struct {
	URI        string
	Credential *Credential
	Direct     bool
	Timeout    time.Duration
}

// WithCredential returns a copy of the options that authenticates as the provided user
func (opts ConnectOptions) WithCredential(username, password, authSource string) ConnectOptions {
	opts.Credential = &Credential{username, password, authSource}
	return opts
}

// Connector opens clients to a deployment
type Connector interface {
	Connect(ctx context.Context, opts ConnectOptions) (Client, error)
}

// Client is a connection to a deployment
type Client interface {
	Database(name string) Database
	Ping(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

// Database runs commands against a single database
type Database interface {
	Name() string
	RunCommand(ctx context.Context, cmd interface{}, result interface{}) error
}

// NewConnector creates a new Connector backed by the MongoDB Go driver
func NewConnector() Connector {
	return driverConnector{}
}

type driverConnector struct{}

func (dc driverConnector) Connect(ctx context.Context, opts ConnectOptions) (Client, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)

	if opts.Direct {
		clientOpts.SetDirect(true)
	}

	if cred := opts.Credential; cred != nil {
		authSource := cred.AuthSource
		if authSource == "" {
			authSource = DefaultAuthSource
		}
		clientOpts.SetAuth(options.Credential{
			AuthSource: authSource,
			Username:   cred.Username,
			Password:   cred.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", RedactURI(opts.URI), err)
	}

	c := &driverClient{client}

	// the driver connects lazily, so ping to surface bad hosts and credentials now
	if err := c.Ping(ctx); err != nil {
		c.Disconnect(ctx)
		return nil, fmt.Errorf("failed to connect to %s: %w", RedactURI(opts.URI), err)
	}
	return c, nil
}

type driverClient struct {
	client *mongo.Client
}

func (dc *driverClient) Database(name string) Database {
	return driverDatabase{dc.client.Database(name)}
}

func (dc *driverClient) Ping(ctx context.Context) error {
	return dc.client.Ping(ctx, readpref.Primary())
}

func (dc *driverClient) Disconnect(ctx context.Context) error {
	return dc.client.Disconnect(ctx)
}

type driverDatabase struct {
	db *mongo.Database
}

func (dd driverDatabase) Name() string {
	return dd.db.Name()
}

func (dd driverDatabase) RunCommand(ctx context.Context, cmd interface{}, result interface{}) error {
	res := dd.db.RunCommand(ctx, cmd)
	if result == nil {
		return res.Err()
	}
	return res.Decode(result)
}
