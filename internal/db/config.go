package db

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Supported dialects.
const (
	DialectSQLServer = "sqlserver"
	DialectPostgres  = "postgres"
	DialectPgx       = "pgx"
	DialectSQLite    = "sqlite"
)

// DefaultConnectTimeout bounds the connection handshake when none is configured.
const DefaultConnectTimeout = 10 * time.Second

// Config describes how to reach the reporting database. It is always passed
// explicitly to NewProvider.
type Config struct {
	Host                   string        `yaml:"host"`
	Port                   int           `yaml:"port"`
	Database               string        `yaml:"database"`
	Username               string        `yaml:"username"`
	Password               string        `yaml:"password"`
	Dialect                string        `yaml:"dialect"`
	Encrypt                bool          `yaml:"encrypt"`
	TrustServerCertificate bool          `yaml:"trust_server_certificate"`
	ConnectTimeout         time.Duration `yaml:"connect_timeout"`
}

// Timeout returns the configured connect timeout or the default.
func (c Config) Timeout() time.Duration {
	if c.ConnectTimeout <= 0 {
		return DefaultConnectTimeout
	}
	return c.ConnectTimeout
}

// Address returns host:port, filling in the dialect's default port. SQL
// Server style "host,port" hosts are accepted.
func (c Config) Address() string {
	host, port := c.Host, c.Port
	if h, p, ok := strings.Cut(host, ","); ok {
		host = strings.TrimSpace(h)
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && port == 0 {
			port = n
		}
	}
	if port == 0 {
		port = defaultPorts[c.Dialect]
	}
	if port == 0 {
		return host
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// String describes the target without credentials.
func (c Config) String() string {
	if c.Dialect == DialectSQLite {
		return fmt.Sprintf("%s:%s", c.Dialect, c.Database)
	}
	return fmt.Sprintf("%s://%s/%s", c.Dialect, c.Address(), c.Database)
}

var defaultPorts = map[string]int{
	DialectSQLServer: 1433,
	DialectPostgres:  5432,
	DialectPgx:       5432,
}
