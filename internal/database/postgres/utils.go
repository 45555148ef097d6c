package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// query accumulates WHERE clauses with positional arguments
type query struct {
	sb   strings.Builder
	args []any
}

func newQuery(base string) *query {
	q := &query{}
	q.sb.WriteString(base)
	q.sb.WriteString(" WHERE 1=1")
	return q
}

// where appends " AND <clause>" where the clause holds a single %d placeholder
// for the next argument position
func (q *query) where(clause string, arg any) {
	q.args = append(q.args, arg)
	q.sb.WriteString(" AND ")
	fmt.Fprintf(&q.sb, clause, len(q.args))
}

func (q *query) raw(s string) {
	q.sb.WriteString(s)
}

// page appends LIMIT/OFFSET
func (q *query) page(limit, offset int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	q.args = append(q.args, limit)
	fmt.Fprintf(&q.sb, " LIMIT $%d", len(q.args))
	if offset > 0 {
		q.args = append(q.args, offset)
		fmt.Fprintf(&q.sb, " OFFSET $%d", len(q.args))
	}
}

func (q *query) String() string {
	return q.sb.String()
}

// isUniqueViolation reports whether err is a unique constraint failure
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// nonNil returns s, or an empty slice for nil, for NOT NULL array columns
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// likePattern escapes s for use inside an ILIKE '%...%' pattern
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// isUUID guards id lookups so a malformed id reads as not found rather than
// a cast error
func isUUID(s string) bool {
	return uuid.Validate(s) == nil
}
