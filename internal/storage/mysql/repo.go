package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"giata_content/internal/domain"
)

// insertChunk caps rows per INSERT statement to stay well below MySQL's
// placeholder and packet limits.
const insertChunk = 500

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func quoteIdent(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func (r *Repo) Truncate(ctx context.Context, table string) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE TABLE "+quoteIdent(table)); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	log.Info().Str("table", table).Msg("- truncated table")
	return nil
}

// InsertRows bulk-inserts with INSERT IGNORE: rows violating a uniqueness
// constraint are silently skipped, never updated.
func (r *Repo) InsertRows(ctx context.Context, table string, columns []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quoteIdent(c)
	}
	prefix := "INSERT IGNORE INTO " + quoteIdent(table) + " (" + strings.Join(quoted, ", ") + ") VALUES "
	group := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"

	for start := 0; start < len(rows); start += insertChunk {
		end := start + insertChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		groups := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			if len(row) != len(columns) {
				return fmt.Errorf("insert into %s: row has %d values, want %d", table, len(row), len(columns))
			}
			groups = append(groups, group)
			for _, v := range row {
				args = append(args, v)
			}
		}

		stmt := prefix + strings.Join(groups, ",")
		if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("insert into %s (%d rows): %w", table, len(chunk), err)
		}
	}
	return nil
}

func (r *Repo) AccommodationIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, selectAccommodationIDsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (r *Repo) LogSkip(ctx context.Context, giataID, url, reason string) error {
	_, err := r.db.ExecContext(ctx, insertSkipSQL, giataID, url, reason)
	return err
}

// Views lists the dashboard view names, sorted for stable output.
func (r *Repo) Views() []string {
	out := make([]string, 0, len(views))
	for name := range views {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dataset runs one whitelisted dashboard query. sort must name a column of
// the view; empty means the view's first column.
func (r *Repo) Dataset(ctx context.Context, name, sortCol string) (domain.Dataset, error) {
	v, ok := views[name]
	if !ok {
		return domain.Dataset{}, domain.ErrUnknownView
	}

	order := "1"
	if sortCol != "" {
		found := false
		for _, c := range v.columns {
			if c == sortCol {
				found = true
				break
			}
		}
		if !found {
			return domain.Dataset{}, domain.ErrBadSort
		}
		order = quoteIdent(sortCol)
	}

	rows, err := r.db.QueryContext(ctx, v.query+" ORDER BY "+order)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("view %s: %w", name, err)
	}
	defer rows.Close()

	out := domain.Dataset{Columns: v.columns}
	for rows.Next() {
		vals := make([]sql.NullString, len(v.columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return domain.Dataset{}, err
		}
		row := make([]string, len(vals))
		for i, nv := range vals {
			if nv.Valid {
				row[i] = nv.String
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, rows.Err()
}
