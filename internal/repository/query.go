package repository

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"dropshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// where accumulates AND-ed predicates and their positional arguments.
type where struct {
	conds []string
	args  []any
}

// arg binds v and returns its placeholder.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

// and adds a predicate; cond must reference placeholders obtained from arg.
func (w *where) and(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// pageQuery describes one aggregate's paginated select.
type pageQuery[T any] struct {
	columns string
	from    string
	where   *where
	// orderBy must be a total order so pages never overlap or skip rows.
	orderBy string
	scan    func(row pgx.Row) (T, error)
}

// fetchPage counts the filtered set, then reads the requested page of it.
// The count is taken before LIMIT/OFFSET and is the page's TotalCount.
func fetchPage[T any](ctx context.Context, q Querier, pq pageQuery[T], params model.PageParams) (model.Page[T], error) {
	page := model.Page[T]{
		Result:    []T{},
		PageIndex: params.Index(),
		PageSize:  params.Size(),
	}

	countSQL := "SELECT COUNT(*) FROM " + pq.from + pq.where.String()
	if err := q.QueryRow(ctx, countSQL, pq.where.args...).Scan(&page.TotalCount); err != nil {
		return page, fmt.Errorf("failed to count rows: %w", err)
	}

	offset := params.Offset()
	if page.TotalCount == 0 || offset >= page.TotalCount {
		return page, nil
	}

	n := len(pq.where.args)
	selectSQL := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		pq.columns, pq.from, pq.where.String(), pq.orderBy, n+1, n+2)
	args := append(slices.Clone(pq.where.args), page.PageSize, offset)

	rows, err := q.Query(ctx, selectSQL, args...)
	if err != nil {
		return page, fmt.Errorf("failed to query page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := pq.scan(rows)
		if err != nil {
			return page, fmt.Errorf("failed to scan row: %w", err)
		}
		page.Result = append(page.Result, item)
	}

	if err := rows.Err(); err != nil {
		return page, fmt.Errorf("error iterating rows: %w", err)
	}

	return page, nil
}

// dayStart returns 00:00 UTC of t's calendar date.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nextDayStart is the exclusive upper bound that makes a date inclusive to its last instant.
func nextDayStart(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere, with wildcards in term escaped.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
