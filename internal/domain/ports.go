package domain

import (
	"context"
	"errors"
)

var (
	ErrUnknownView = errors.New("unknown dashboard view")
	ErrBadSort     = errors.New("sort column not in view")
)

// Store is the relational store consumed by the pipelines. InsertRows must
// silently skip rows that violate a uniqueness constraint (insert-or-skip,
// never insert-or-update).
type Store interface {
	Truncate(ctx context.Context, table string) error
	InsertRows(ctx context.Context, table string, columns []string, rows [][]string) error

	// AccommodationIDs returns the identifiers already loaded, for delta runs.
	AccommodationIDs(ctx context.Context) (map[string]struct{}, error)

	// LogSkip records an accommodation document that could not be ingested.
	LogSkip(ctx context.Context, giataID, url, reason string) error
}

// Fetcher retrieves one feed document. A failed fetch is an error to be
// handled by skipping, never by aborting the whole run.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Dataset is one dashboard view rendered as columns plus row tuples.
type Dataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type DashboardRepository interface {
	Dataset(ctx context.Context, view, sort string) (Dataset, error)
	Views() []string
}
