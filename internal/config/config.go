// Package config defines the command line and environment options and the
// optional YAML secrets file.
package config

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/logger"
	"github.com/erazemk/lostfound/internal/mock"
	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/query"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// GetVersion returns the build version.
func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Database holds connection flags. Values in the secrets file win.
type Database struct {
	Host                   string        `long:"host" env:"HOST" description:"Database server host, optionally host,port"`
	Port                   int           `long:"port" env:"PORT" description:"Database server port (dialect default when unset)"`
	Name                   string        `long:"name" env:"NAME" default:"lostfound.sqlite3" description:"Database name, or file path for sqlite"`
	User                   string        `long:"user" env:"USER" description:"Database user"`
	Password               string        `long:"password" env:"PASSWORD" description:"Database password"`
	Dialect                string        `long:"dialect" env:"DIALECT" default:"sqlite" choice:"sqlserver" choice:"postgres" choice:"pgx" choice:"sqlite" description:"SQL dialect and driver"`
	Encrypt                bool          `long:"encrypt" env:"ENCRYPT" description:"Require an encrypted connection"`
	TrustServerCertificate bool          `long:"trust-server-certificate" env:"TRUST_SERVER_CERTIFICATE" description:"Skip server certificate validation"`
	Timeout                time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"Connect and query timeout"`
}

// Config converts the flags into a db.Config.
func (d Database) Config() db.Config {
	return db.Config{
		Host:                   d.Host,
		Port:                   d.Port,
		Database:               d.Name,
		Username:               d.User,
		Password:               d.Password,
		Dialect:                d.Dialect,
		Encrypt:                d.Encrypt,
		TrustServerCertificate: d.TrustServerCertificate,
		ConnectTimeout:         d.Timeout,
	}
}

// Cache configures the query result cache.
type Cache struct {
	TTL     time.Duration `long:"ttl" env:"TTL" default:"300s" description:"How long identical queries are served from memory (0 disables)"`
	Entries int           `long:"entries" env:"ENTRIES" default:"256" description:"Maximum cached results"`
}

// Mock configures the fallback dataset.
type Mock struct {
	Count int    `long:"count" env:"COUNT" default:"300" description:"Fallback items generated when the database is unavailable"`
	Seed  uint64 `long:"seed" env:"SEED" default:"123" description:"Fallback data seed"`
}

// Options are the global options shared by every command.
type Options struct {
	Secrets   string        `short:"s" long:"secrets" env:"LOSTFOUND_SECRETS" description:"YAML file with database settings, JWT secret and accounts"`
	JWTSecret string        `long:"jwt-secret" env:"LOSTFOUND_JWT_SECRET" description:"JWT signing key (auto-generated if empty)"`
	Database  Database      `group:"Database" namespace:"db" env-namespace:"LOSTFOUND_DB"`
	Cache     Cache         `group:"Cache" namespace:"cache" env-namespace:"LOSTFOUND_CACHE"`
	Mock      Mock          `group:"Fallback data" namespace:"mock" env-namespace:"LOSTFOUND_MOCK"`
	Log       logger.Config `group:"Logging" namespace:"log" env-namespace:"LOSTFOUND_LOG"`
}

// Secrets is the content of the secrets file. Keys absent from the file
// keep the values given by flags and environment.
type Secrets struct {
	Database  db.Config    `yaml:"database"`
	JWTSecret string       `yaml:"jwt_secret"`
	Accounts  []model.User `yaml:"accounts"`
}

// Resolved is the effective configuration after merging the secrets file.
type Resolved struct {
	Database  db.Config
	JWTSecret string
	Accounts  []model.User
	CacheTTL  time.Duration
	CacheSize int
	MockCount int
	MockSeed  uint64
}

// Resolve merges the secrets file, if any, over the flag values.
func (o *Options) Resolve() (*Resolved, error) {
	s := Secrets{
		Database:  o.Database.Config(),
		JWTSecret: o.JWTSecret,
	}
	if o.Secrets != "" {
		data, err := os.ReadFile(o.Secrets)
		if err != nil {
			return nil, fmt.Errorf("reading secrets file: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing secrets file %s: %w", o.Secrets, err)
		}
	}

	r := &Resolved{
		Database:  s.Database,
		JWTSecret: s.JWTSecret,
		Accounts:  s.Accounts,
		CacheTTL:  o.Cache.TTL,
		CacheSize: cmp.Or(o.Cache.Entries, query.DefaultCacheSize),
		MockCount: o.Mock.Count,
		MockSeed:  o.Mock.Seed,
	}
	if r.MockCount < 0 {
		return nil, fmt.Errorf("mock count must not be negative: %d", r.MockCount)
	}
	if r.MockCount == 0 {
		r.MockCount = mock.DefaultItemCount
	}
	return r, nil
}
