package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/lostfound/internal/model"
	"github.com/erazemk/lostfound/internal/table"
)

// InsertItems writes an items table into the development schema. Status
// labels are stored as their integer codes, as in production.
func InsertItems(ctx context.Context, db *sql.DB, items *table.Table) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO Items (ItemId, UserId, Title, LostDescription, Category, Location, DateLost, Status, CreatedBy, CreatedDate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	for i := range items.Rows {
		status := items.Value(i, model.ColStatus)
		if st, ok := model.ParseStatus(status); ok {
			status = int64(st)
		}
		_, err := stmt.ExecContext(ctx,
			cell(items, i, model.ColItemID),
			cell(items, i, model.ColUserID),
			cell(items, i, model.ColTitle),
			cell(items, i, model.ColLostDescription),
			cell(items, i, model.ColCategory),
			cell(items, i, model.ColLocation),
			cell(items, i, model.ColDateLost),
			status,
			cell(items, i, model.ColCreatedBy),
			cell(items, i, model.ColCreatedDate),
		)
		if err != nil {
			return fmt.Errorf("inserting item row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}
	return nil
}

// InsertClaims writes a claims table into the development schema. Columns
// the live schema does not have are ignored.
func InsertClaims(ctx context.Context, db *sql.DB, claims *table.Table) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO Claims (ClaimId, ItemId, UserId, CreatedBy, CreatedDate, FoundDescription)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing claim insert: %w", err)
	}
	defer stmt.Close()

	for i := range claims.Rows {
		_, err := stmt.ExecContext(ctx,
			cell(claims, i, model.ColClaimID),
			cell(claims, i, model.ColItemID),
			cell(claims, i, model.ColUserID),
			cell(claims, i, model.ColCreatedBy),
			cell(claims, i, model.ColCreatedDate),
			cell(claims, i, model.ColFoundDescription),
		)
		if err != nil {
			return fmt.Errorf("inserting claim row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing claims: %w", err)
	}
	return nil
}

// cell returns a value suitable for binding; missing cells become NULL.
func cell(t *table.Table, row int, column string) any {
	v := t.Value(row, column)
	if table.IsMissing(v) {
		return nil
	}
	return v
}
