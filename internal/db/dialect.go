package db

import (
	"net/url"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

// dialect knows the driver name, DSN format and placeholder style of a database.
type dialect struct {
	driver      string
	dsn         func(Config) string
	placeholder func(n int) string
}

var dialects = map[string]dialect{
	DialectSQLServer: {
		driver:      "sqlserver",
		dsn:         sqlServerDSN,
		placeholder: func(n int) string { return "@p" + strconv.Itoa(n) },
	},
	DialectPostgres: {
		driver:      "postgres",
		dsn:         postgresDSN,
		placeholder: dollarPlaceholder,
	},
	DialectPgx: {
		driver:      "pgx",
		dsn:         postgresDSN,
		placeholder: dollarPlaceholder,
	},
	DialectSQLite: {
		driver:      "sqlite",
		dsn:         func(c Config) string { return c.Database },
		placeholder: func(int) string { return "?" },
	},
}

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

func sqlServerDSN(c Config) string {
	q := url.Values{}
	if c.Database != "" {
		q.Set("database", c.Database)
	}
	q.Set("encrypt", strconv.FormatBool(c.Encrypt))
	q.Set("TrustServerCertificate", strconv.FormatBool(c.TrustServerCertificate))
	q.Set("connection timeout", strconv.Itoa(int(c.Timeout().Seconds())))

	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     c.Address(),
		RawQuery: q.Encode(),
	}
	return u.String()
}

func postgresDSN(c Config) string {
	sslmode := "disable"
	switch {
	case c.Encrypt && c.TrustServerCertificate:
		sslmode = "require"
	case c.Encrypt:
		sslmode = "verify-full"
	}

	q := url.Values{}
	q.Set("sslmode", sslmode)
	q.Set("connect_timeout", strconv.Itoa(int(c.Timeout().Seconds())))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     c.Address(),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// rebind rewrites '?' placeholders outside quoted text using the dialect's style.
func (d dialect) rebind(query string) string {
	if d.placeholder(1) == "?" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			n++
			b.WriteString(d.placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
