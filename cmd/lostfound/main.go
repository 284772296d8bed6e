package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/erazemk/lostfound/internal/config"
)

var opts config.Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "lostfound"
	parser.LongDescription = "Reporting and statistics for the Lost & Found admin dashboard."

	commands := []struct {
		name, short, long string
		data              any
	}{
		{"serve", "Run the HTTP API", "Serve the stats and export API.", &serveCommand{}},
		{"export", "Write a report spreadsheet", "Export a report for a date range to an .xlsx file.", &exportCommand{}},
		{"stats", "Print dashboard statistics", "Print the stats dashboard for a date range as JSON.", &statsCommand{}},
		{"check", "Check the database connection", "Exit non-zero when the database does not answer.", &checkCommand{}},
		{"seed", "Create a development database", "Create a SQLite database filled with generated items and claims.", &seedCommand{}},
		{"hash-password", "Hash an account password", "Print a bcrypt hash for the accounts section of the secrets file.", &hashPasswordCommand{}},
		{"version", "Print the version", "Print the build version.", &versionCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		// go-flags has already printed parse errors.
		if !errors.As(err, &flagsErr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type versionCommand struct{}

func (versionCommand) Execute([]string) error {
	fmt.Println(config.GetVersion())
	return nil
}
