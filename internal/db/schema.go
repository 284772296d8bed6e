package db

import (
	"database/sql"
	"fmt"
)

// schema mirrors the reporting tables of the production database closely
// enough for local development and tests. Status carries no CHECK so that
// out-of-range codes can be reproduced.
const schema = `
CREATE TABLE IF NOT EXISTS Items (
    ItemId          INTEGER PRIMARY KEY,
    UserId          INTEGER NOT NULL,
    Title           TEXT NOT NULL,
    LostDescription TEXT,
    Category        TEXT,
    Location        TEXT,
    DateLost        DATETIME,
    Status          INTEGER NOT NULL DEFAULT 0,
    CreatedBy       INTEGER,
    CreatedDate     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_date_lost ON Items(DateLost);
CREATE INDEX IF NOT EXISTS idx_items_created_date ON Items(CreatedDate);

CREATE TABLE IF NOT EXISTS Claims (
    ClaimId          INTEGER PRIMARY KEY,
    ItemId           INTEGER NOT NULL,
    UserId           INTEGER NOT NULL,
    CreatedBy        INTEGER,
    CreatedDate      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FoundDescription TEXT
);

CREATE INDEX IF NOT EXISTS idx_claims_created_date ON Claims(CreatedDate);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
