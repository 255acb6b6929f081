package postgresdb

import (
	"bytes"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
)

// AddWhereClause appends the given conditions joined with AND.
func AddWhereClause(buf *bytes.Buffer, conditions []string) {
	for i, cond := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		buf.WriteString(cond)
	}
}

// AddOrderByClause adds ORDER BY clause to the query buffer
func AddOrderByClause(buf *bytes.Buffer, orderField, pkField, direction string) error {
	quotedOrderField, err := QuoteIdentifier(orderField)
	if err != nil {
		return fmt.Errorf("invalid order field name: %w", err)
	}
	quotedPKField, err := QuoteIdentifier(pkField)
	if err != nil {
		return fmt.Errorf("invalid pk field name: %w", err)
	}

	if direction != fop.DESC {
		direction = fop.ASC
	}

	fmt.Fprintf(buf, " ORDER BY %s %s", quotedOrderField, direction)

	// Primary key as secondary sort keeps pages stable.
	if orderField != pkField {
		fmt.Fprintf(buf, ", %s %s", quotedPKField, direction)
	}

	return nil
}

// AddLimitClause adds LIMIT clause to the query buffer
func AddLimitClause(limit int, data pgx.NamedArgs, buf *bytes.Buffer) {
	buf.WriteString(" LIMIT @limit")
	data["limit"] = limit
}

// AddOffsetClause adds OFFSET clause to the query buffer
func AddOffsetClause(offset int, data pgx.NamedArgs, buf *bytes.Buffer) {
	buf.WriteString(" OFFSET @offset")
	data["offset"] = offset
}
