package postgresdb

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/backoffice/core/scaffolding/fop"
)

// ListStatement is a list query rendered for a QuerySpec and a set of
// request params. Caller input only ever appears in the args.
type ListStatement struct {
	Select     string
	Args       pgx.NamedArgs
	Count      string
	CountArgs  pgx.NamedArgs
	Order      fop.By
	Page       fop.PageNumber
	Paginated  bool
	Projection []string
}

// BuildList renders the select and count statements for spec and params.
func BuildList(spec fop.QuerySpec, params fop.Params) (ListStatement, error) {
	if err := validateSpec(spec); err != nil {
		return ListStatement{}, err
	}

	columns := make([]string, len(spec.VisibleFields))
	quoted := make(map[string]string, len(spec.VisibleFields))
	for i, field := range spec.VisibleFields {
		col, _ := QuoteIdentifier(field)
		alias, _ := QuoteAlias(field)
		quoted[field] = col
		columns[i] = col + " AS " + alias
	}

	args := pgx.NamedArgs{}
	var conditions []string

	if term := params.Search(); term != "" && len(spec.SearchableFields) > 0 {
		ors := make([]string, len(spec.SearchableFields))
		for i, field := range spec.SearchableFields {
			col, _ := QuoteIdentifier(field)
			ors[i] = col + "::text ILIKE @search"
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
		args["search"] = "%" + EscapeLike(term) + "%"
	}

	for i, field := range spec.VisibleFields {
		value, ok := params.Filter(field)
		if !ok {
			continue
		}
		name := fmt.Sprintf("filter_%d", i)
		conditions = append(conditions, fmt.Sprintf("%s::text = @%s", quoted[field], name))
		args[name] = value
	}

	var where bytes.Buffer
	AddWhereClause(&where, conditions)

	order, err := resolveOrder(spec, params.Order())
	if err != nil {
		return ListStatement{}, err
	}

	var sel bytes.Buffer
	sel.WriteString("SELECT ")
	sel.WriteString(strings.Join(columns, ", "))
	sel.WriteString(" FROM ")
	sel.WriteString(spec.From)
	sel.Write(where.Bytes())
	if err := AddOrderByClause(&sel, order.Field, spec.PK(), order.Direction); err != nil {
		return ListStatement{}, fmt.Errorf("%w: %w", fop.ErrInvalidQuerySpec, err)
	}

	stmt := ListStatement{
		Order:      order,
		Paginated:  spec.Paginate,
		Projection: spec.VisibleFields,
	}

	if spec.Paginate {
		stmt.CountArgs = maps.Clone(args)
		stmt.Count = "SELECT COUNT(*) FROM " + spec.From + where.String()

		stmt.Page = params.PageNumber()
		AddLimitClause(stmt.Page.PerPage, args, &sel)
		AddOffsetClause(stmt.Page.Offset(), args, &sel)
	}

	stmt.Select = sel.String()
	stmt.Args = args

	return stmt, nil
}

// GenerateList runs the list query described by spec against db and returns
// the projected rows. Execution failures are wrapped in
// fop.ErrStorageUnavailable and are not retried.
func GenerateList(ctx context.Context, db Querier, spec fop.QuerySpec, params fop.Params) (fop.QueryResult, error) {
	stmt, err := BuildList(spec, params)
	if err != nil {
		return fop.QueryResult{}, err
	}

	result := fop.QueryResult{
		Items: []fop.Record{},
	}

	if stmt.Paginated {
		var total int64
		if err := db.QueryRow(ctx, stmt.Count, stmt.CountArgs).Scan(&total); err != nil {
			return fop.QueryResult{}, storageError("count", err)
		}

		info := fop.NewPageInfo(stmt.Page, total)
		result.Meta = &info

		if int64(stmt.Page.Offset()) >= total {
			return result, nil
		}
	}

	rows, err := db.Query(ctx, stmt.Select, stmt.Args)
	if err != nil {
		return fop.QueryResult{}, storageError("select", err)
	}
	defer rows.Close()

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return fop.QueryResult{}, storageError("scan", err)
		}
		if len(values) != len(stmt.Projection) {
			return fop.QueryResult{}, fmt.Errorf("projection mismatch: got %d columns, want %d", len(values), len(stmt.Projection))
		}
		result.Items = append(result.Items, fop.Record{
			Columns: stmt.Projection,
			Values:  values,
		})
	}
	if err := rows.Err(); err != nil {
		return fop.QueryResult{}, storageError("rows", err)
	}

	return result, nil
}

// resolveOrder applies the sort policy: a visible field is honored, anything
// else falls back to the primary key ascending unless the QuerySpec sets StrictSort.
func resolveOrder(spec fop.QuerySpec, requested fop.By) (fop.By, error) {
	if requested.Field != "" && spec.IsVisible(requested.Field) {
		return requested, nil
	}
	if requested.Field != "" && spec.StrictSort {
		return fop.By{}, fmt.Errorf("%w: %q", fop.ErrInvalidSortColumn, requested.Field)
	}
	return fop.NewBy(spec.PK(), fop.ASC), nil
}

func validateSpec(spec fop.QuerySpec) error {
	from := strings.TrimSpace(spec.From)
	if from == "" || strings.Contains(from, ";") {
		return fmt.Errorf("%w: from expression %q", fop.ErrInvalidQuerySpec, spec.From)
	}
	if len(spec.VisibleFields) == 0 {
		return fmt.Errorf("%w: no visible fields", fop.ErrInvalidQuerySpec)
	}

	fields := append(append([]string{spec.PK()}, spec.VisibleFields...), spec.SearchableFields...)
	for _, field := range fields {
		if _, err := QuoteIdentifier(field); err != nil {
			return fmt.Errorf("%w: %w", fop.ErrInvalidQuerySpec, err)
		}
	}
	return nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", fop.ErrStorageUnavailable, op, HandlePgError(err))
}
