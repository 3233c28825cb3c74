package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"giata_content/internal/adapters/giata"
	"giata_content/internal/adapters/observability"
	"giata_content/internal/domain"
)

// DefinitionsPipeline loads the taxonomy feed: truncate, fetch, map, insert.
type DefinitionsPipeline struct {
	fetch domain.Fetcher
	store domain.Store
	cache domain.Cache
}

func NewDefinitionsPipeline(f domain.Fetcher, s domain.Store, cache domain.Cache) *DefinitionsPipeline {
	return &DefinitionsPipeline{fetch: f, store: s, cache: cache}
}

func (p *DefinitionsPipeline) Run(ctx context.Context, feedURL string) error {
	for _, table := range domain.DefinitionsTables {
		if err := p.store.Truncate(ctx, table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	log.Info().Str("url", feedURL).Msg("reading definitions feed")
	raw, err := p.fetch.Fetch(ctx, feedURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", feedURL, err)
	}

	doc, err := giata.ParseDefinitions(raw)
	if err != nil {
		// load whatever partially decoded; an unusable body yields no rows
		log.Error().Err(err).Str("url", feedURL).Msg("definitions feed did not decode cleanly")
	}

	b := NewBatch()
	MapDefinitions(doc, b)
	insertBatch(ctx, p.store, b, domain.DefinitionsTables)

	if p.cache != nil {
		invalidateViewCache(ctx, p.cache)
	}
	log.Info().Int("rows", b.Lines).Msg("definitions rows processed")
	return nil
}

// OpenContentPipeline loads accommodation detail documents listed by one or
// more sitemap feeds. In full mode the target tables are truncated first; in
// delta mode only identifiers not yet present are fetched. The two modes are
// mutually exclusive per invocation.
type OpenContentPipeline struct {
	fetch  domain.Fetcher
	store  domain.Store
	cache  domain.Cache
	locale string
	delta  bool
}

func NewOpenContentPipeline(f domain.Fetcher, s domain.Store, cache domain.Cache, locale string, delta bool) *OpenContentPipeline {
	return &OpenContentPipeline{fetch: f, store: s, cache: cache, locale: locale, delta: delta}
}

func (p *OpenContentPipeline) Run(ctx context.Context, sitemapURLs []string) error {
	existing := map[string]struct{}{}
	if p.delta {
		ids, err := p.store.AccommodationIDs(ctx)
		if err != nil {
			return fmt.Errorf("load existing ids: %w", err)
		}
		existing = ids
		log.Info().Int("existing", len(existing)).Msg("delta mode, skipping known accommodations")
	} else {
		for _, table := range domain.OpenContentTables {
			if err := p.store.Truncate(ctx, table); err != nil {
				return fmt.Errorf("truncate %s: %w", table, err)
			}
		}
	}

	processed := 0
	lookups := NewBatch()
	for _, sitemapURL := range sitemapURLs {
		log.Info().Str("url", sitemapURL).Msg("reading sitemap feed")
		raw, err := p.fetch.Fetch(ctx, sitemapURL)
		if err != nil {
			log.Error().Err(err).Str("url", sitemapURL).Msg("sitemap fetch failed, skipping feed")
			continue
		}
		sm, err := giata.ParseSitemap(raw)
		if err != nil {
			log.Error().Err(err).Str("url", sitemapURL).Msg("sitemap did not parse, skipping feed")
			continue
		}
		for _, entry := range sm.URLs {
			id := giataIDFromURL(entry.Loc)
			if id != "" {
				if _, ok := existing[id]; ok {
					observability.ObserveSkip("delta")
					continue
				}
			}
			if p.processAccommodation(ctx, entry.Loc, id, lookups) {
				processed++
			}
		}
	}

	insertBatch(ctx, p.store, lookups, domain.LookupTables)

	if p.cache != nil {
		invalidateViewCache(ctx, p.cache)
	}
	log.Info().Int("accommodations", processed).Msg("rows processed")
	return nil
}

// processAccommodation fetches, maps and inserts one detail document. Any
// failure skips just this accommodation and is recorded.
func (p *OpenContentPipeline) processAccommodation(ctx context.Context, loc, id string, lookups *Batch) bool {
	log.Info().Str("url", loc).Msg("- reading accommodation feed")
	raw, err := p.fetch.Fetch(ctx, loc)
	if err != nil {
		log.Warn().Err(err).Str("url", loc).Str("giata_id", id).Msg("accommodation fetch failed, skipping")
		_ = p.store.LogSkip(ctx, id, loc, "fetch failed")
		observability.ObserveSkip("fetch")
		return false
	}
	doc, err := giata.ParseAccommodation(raw)
	if err != nil {
		log.Warn().Err(err).Str("url", loc).Str("giata_id", id).Msg("accommodation document did not parse, skipping")
		_ = p.store.LogSkip(ctx, id, loc, "parse failed")
		observability.ObserveSkip("parse")
		return false
	}

	per := NewBatch()
	MapAccommodation(doc, p.locale, per, lookups)
	insertBatch(ctx, p.store, per, domain.AccommodationTables)
	return true
}

// insertBatch bulk-inserts each table's accumulated rows. An insert failure
// aborts only that statement; it is logged and the run continues.
func insertBatch(ctx context.Context, store domain.Store, b *Batch, tables []string) {
	for _, table := range tables {
		rows := b.Rows(table)
		if len(rows) == 0 {
			continue
		}
		if err := store.InsertRows(ctx, table, domain.Columns[table], rows); err != nil {
			log.Error().Err(err).Str("table", table).Int("rows", len(rows)).Msg("bulk insert failed")
			observability.ObserveInsertFailure(table)
			continue
		}
		observability.ObserveRowsInserted(table, len(rows))
	}
}
