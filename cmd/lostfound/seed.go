package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/erazemk/lostfound/internal/auth"
	"github.com/erazemk/lostfound/internal/db"
	"github.com/erazemk/lostfound/internal/mock"
	"github.com/erazemk/lostfound/internal/model"
)

type seedCommand struct {
	Count int    `long:"count" default:"300" description:"Number of items to generate"`
	Seed  uint64 `long:"seed" default:"123" description:"Generator seed"`
	Year  int    `long:"year" description:"Year of the generated items (default: current year)"`
}

func (c *seedCommand) Execute([]string) error {
	cfg, err := opts.Resolve()
	if err != nil {
		return err
	}
	if cfg.Database.Dialect != db.DialectSQLite {
		return fmt.Errorf("seed only writes sqlite databases, not %s", cfg.Database.Dialect)
	}

	path := cfg.Database.Database
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("database file %s already exists", path)
	}

	year := c.Year
	if year == 0 {
		year = time.Now().Year()
	}

	database, err := db.Open(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		os.Remove(path)
		return fmt.Errorf("ensuring schema: %w", err)
	}

	ctx := context.Background()
	items := mock.GenerateItems(c.Count, year, c.Seed)
	claims := mock.GenerateClaims(items, c.Seed)
	if err := db.InsertItems(ctx, database, items); err != nil {
		os.Remove(path)
		return err
	}
	if err := db.InsertClaims(ctx, database, claims); err != nil {
		os.Remove(path)
		return err
	}

	fmt.Printf("Database created: %s\n", path)
	fmt.Printf("Inserted %d items and %d claims for %d.\n", items.Len(), claims.Len(), year)
	return nil
}

type hashPasswordCommand struct {
	Username string `short:"u" long:"user" default:"admin" description:"Account name for the printed snippet"`
	Role     string `short:"r" long:"role" default:"admin" choice:"admin" choice:"staff" description:"Account role"`
	Args     struct {
		Password string `positional-arg-name:"password" description:"Password to hash (generated when omitted)"`
	} `positional-args:"yes"`
}

func (c *hashPasswordCommand) Execute([]string) error {
	password := c.Args.Password
	generated := password == ""
	if generated {
		var err error
		if password, err = generatePassword(16); err != nil {
			return fmt.Errorf("generating password: %w", err)
		}
	}

	if err := model.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if generated {
		fmt.Printf("# Password: %s\n", password)
		fmt.Println("# Save this password, it cannot be recovered.")
	}
	fmt.Println("accounts:")
	fmt.Printf("  - username: %s\n", c.Username)
	fmt.Printf("    password_hash: %q\n", hash)
	fmt.Printf("    role: %s\n", c.Role)
	return nil
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
