package app

import (
	"sort"
	"strconv"
	"strings"
)

// formatValue serializes one scalar into its column value. Missing values
// (nil, empty) become the empty string; serialization never fails. Rows are
// bound as statement parameters at the store boundary, so no further escaping
// happens here.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// Rowset accumulates row tuples for one table, dropping exact duplicates.
type Rowset struct {
	seen map[string]struct{}
	rows [][]string
}

func newRowset() *Rowset {
	return &Rowset{seen: make(map[string]struct{})}
}

// Add serializes values into a tuple and keeps it unless an identical tuple
// was already seen.
func (r *Rowset) Add(values ...any) bool {
	tuple := make([]string, len(values))
	for i, v := range values {
		tuple[i] = formatValue(v)
	}
	key := strings.Join(tuple, "\x1f")
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = struct{}{}
	r.rows = append(r.rows, tuple)
	return true
}

// Rows returns the deduplicated tuples sorted lexicographically, so repeated
// runs over the same feed produce identical insert statements.
func (r *Rowset) Rows() [][]string {
	out := make([][]string, len(r.rows))
	copy(out, r.rows)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
	return out
}

func (r *Rowset) Len() int { return len(r.rows) }

// Batch owns one run's output buffers, keyed by target table, plus the
// processed-lines counter reported at the end of the run. It is created by the
// pipeline and threaded through the mapping calls; there is no package-level
// accumulator state.
type Batch struct {
	tables map[string]*Rowset

	// Lines counts rows emitted during traversal, before deduplication.
	Lines int
}

func NewBatch() *Batch {
	return &Batch{tables: make(map[string]*Rowset)}
}

func (b *Batch) Add(table string, values ...any) {
	rs, ok := b.tables[table]
	if !ok {
		rs = newRowset()
		b.tables[table] = rs
	}
	rs.Add(values...)
	b.Lines++
}

// Rows returns the deduplicated, sorted tuples for one table; nil when the
// table received no rows.
func (b *Batch) Rows(table string) [][]string {
	rs, ok := b.tables[table]
	if !ok || rs.Len() == 0 {
		return nil
	}
	return rs.Rows()
}
