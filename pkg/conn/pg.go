package conn

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yanun0323/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultPostgresHost    = "localhost"
	defaultPostgresPort    = 5432
	defaultPostgresSSLMode = "disable"
)

// Option defines connection options for PostgreSQL.
type Option struct {
	Host       string            `json:"host"`
	Port       int               `json:"port"`
	User       string            `json:"user"`
	Password   string            `json:"password"`
	Database   string            `json:"database"`
	SSLMode    string            `json:"sslMode"`
	Params     map[string]string `json:"params"`
	ConnString string            `json:"connString"`
}

// Enabled reports whether the option points at a server at all.
func (opt Option) Enabled() bool {
	return opt.Host != "" || opt.ConnString != ""
}

// Client wraps a PostgreSQL connection pool.
type Client struct {
	db *gorm.DB
}

// New opens a PostgreSQL client and verifies it with a ping.
func New(ctx context.Context, option Option) (*Client, error) {
	db, err := gorm.Open(postgres.Open(option.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "postgres pool")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	return &Client{db: db}, nil
}

// DB returns the underlying gorm.DB instance.
func (c *Client) DB() *gorm.DB {
	if c == nil {
		return nil
	}
	return c.db
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DSN builds the postgres URL, falling back to local defaults.
func (opt Option) DSN() string {
	if opt.ConnString != "" {
		return opt.ConnString
	}

	host := opt.Host
	if host == "" {
		host = defaultPostgresHost
	}

	port := opt.Port
	if port == 0 {
		port = defaultPostgresPort
	}

	sslMode := opt.SSLMode
	if sslMode == "" {
		sslMode = defaultPostgresSSLMode
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", host, port),
	}

	if opt.User != "" {
		if opt.Password != "" {
			u.User = url.UserPassword(opt.User, opt.Password)
		} else {
			u.User = url.User(opt.User)
		}
	}

	if opt.Database != "" {
		u.Path = "/" + opt.Database
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	for key, value := range opt.Params {
		if key == "" {
			continue
		}
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()

	return u.String()
}
