package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/store"
)

// psql renders squirrel statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sortColumns maps the sort field names accepted by a listing to columns.
type sortColumns map[string]string

var userSortColumns = sortColumns{
	"id":        "id",
	"name":      "name",
	"surname":   "surname",
	"birthDate": "birth_date",
	"email":     "email",
	"active":    "active",
	"createdAt": "created_at",
}

var cardSortColumns = sortColumns{
	"id":             "id",
	"number":         "number",
	"holder":         "holder",
	"expirationDate": "expiration_date",
	"active":         "active",
	"userId":         "user_id",
	"createdAt":      "created_at",
}

// orderBy converts the requested sort into ORDER BY terms. Unknown fields
// yield store.ErrInvalidSort. The id column always ends the list so paging is
// stable across requests.
func (c sortColumns) orderBy(orders []domain.SortOrder) ([]string, error) {
	terms := make([]string, 0, len(orders)+1)
	sawID := false
	for _, o := range orders {
		column, ok := c[o.Field]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", store.ErrInvalidSort, o.Field)
		}
		dir := "ASC"
		if strings.EqualFold(string(o.Direction), string(domain.SortDesc)) {
			dir = "DESC"
		}
		terms = append(terms, pq.QuoteIdentifier(column)+" "+dir)
		sawID = sawID || column == "id"
	}
	if !sawID {
		terms = append(terms, pq.QuoteIdentifier("id")+" ASC")
	}
	return terms, nil
}

// selectPage runs the count and the page query for table filtered by pred,
// scanning the page rows into dest.
func selectPage(
	ctx context.Context,
	db sqlx.QueryerContext,
	table string,
	columns []string,
	sorts sortColumns,
	pred store.Predicate,
	page domain.PageRequest,
	dest any,
) (int64, error) {
	order, err := sorts.orderBy(page.Sort)
	if err != nil {
		return 0, err
	}

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(table).Where(pred).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int64
	if err := sqlx.GetContext(ctx, db, &total, countSQL, countArgs...); err != nil {
		return 0, MapError(err)
	}
	if total == 0 {
		return 0, nil
	}

	pageSQL, pageArgs, err := psql.Select(columns...).
		From(table).
		Where(pred).
		OrderBy(order...).
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build page query: %w", err)
	}
	if err := sqlx.SelectContext(ctx, db, dest, pageSQL, pageArgs...); err != nil {
		return 0, MapError(err)
	}

	return total, nil
}
