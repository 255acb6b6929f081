package postgresdb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Exists reports whether table has a row whose column equals value.
// table and column are trusted identifiers; value is bound.
func Exists(ctx context.Context, db Querier, table, column string, value any) (bool, error) {
	t, err := QuoteIdentifier(table)
	if err != nil {
		return false, fmt.Errorf("invalid table name: %w", err)
	}
	c, err := QuoteIdentifier(column)
	if err != nil {
		return false, fmt.Errorf("invalid column name: %w", err)
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = @value)`, t, c)

	var found bool
	if err := db.QueryRow(ctx, query, pgx.NamedArgs{"value": value}).Scan(&found); err != nil {
		return false, storageError("exists", err)
	}
	return found, nil
}

// IsUnique reports whether no row of table other than the excepted one has
// column equal to value. An empty exceptColumn disables the exception.
func IsUnique(ctx context.Context, db Querier, table, column string, value any, exceptColumn string, except any) (bool, error) {
	t, err := QuoteIdentifier(table)
	if err != nil {
		return false, fmt.Errorf("invalid table name: %w", err)
	}
	c, err := QuoteIdentifier(column)
	if err != nil {
		return false, fmt.Errorf("invalid column name: %w", err)
	}

	args := pgx.NamedArgs{"value": value}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = @value`, t, c)

	if exceptColumn != "" {
		ec, err := QuoteIdentifier(exceptColumn)
		if err != nil {
			return false, fmt.Errorf("invalid except column name: %w", err)
		}
		query += fmt.Sprintf(` AND %s <> @except`, ec)
		args["except"] = except
	}
	query += `)`

	var taken bool
	if err := db.QueryRow(ctx, query, args).Scan(&taken); err != nil {
		return false, storageError("unique", err)
	}
	return !taken, nil
}
