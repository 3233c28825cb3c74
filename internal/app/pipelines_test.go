package app_test

import (
	"context"
	"errors"
	"testing"

	"giata_content/internal/app"
	"giata_content/internal/domain"
)

// ---- fakes ----

type fakeFetcher struct {
	bodies map[string][]byte
	calls  []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	b, ok := f.bodies[url]
	if !ok {
		return nil, errors.New("fetch failed")
	}
	return b, nil
}

type skipRecord struct{ giataID, url, reason string }

type fakeStore struct {
	truncated []string
	inserted  map[string][][]string
	existing  map[string]struct{}
	skips     []skipRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{inserted: map[string][][]string{}}
}

func (s *fakeStore) Truncate(ctx context.Context, table string) error {
	s.truncated = append(s.truncated, table)
	return nil
}

func (s *fakeStore) InsertRows(ctx context.Context, table string, columns []string, rows [][]string) error {
	s.inserted[table] = append(s.inserted[table], rows...)
	return nil
}

func (s *fakeStore) AccommodationIDs(ctx context.Context) (map[string]struct{}, error) {
	return s.existing, nil
}

func (s *fakeStore) LogSkip(ctx context.Context, giataID, url, reason string) error {
	s.skips = append(s.skips, skipRecord{giataID, url, reason})
	return nil
}

func sitemapFor(urls ...string) []byte {
	body := "<urlset>"
	for _, u := range urls {
		body += "<url><loc>" + u + "</loc></url>"
	}
	return []byte(body + "</urlset>")
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}

// ---- tests ----

func TestDefinitionsPipeline_Run(t *testing.T) {
	const feed = "https://feeds.example/definitions/en"
	fetch := &fakeFetcher{bodies: map[string][]byte{
		feed: []byte(`{"en":{"facts":{"f1":{"label":"Pool"}},"units":{"u1":{"label":"Meter"}}}}`),
	}}
	store := newFakeStore()

	p := app.NewDefinitionsPipeline(fetch, store, nil)
	if err := p.Run(context.Background(), feed); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.truncated) != len(domain.DefinitionsTables) {
		t.Fatalf("truncated %v, want all definitions tables", store.truncated)
	}
	if got := store.inserted[domain.TableDefFacts]; len(got) != 1 || got[0][1] != "Pool" {
		t.Fatalf("facts inserted = %v", got)
	}
	if got := store.inserted[domain.TableDefUnits]; len(got) != 1 || got[0][1] != "Meter" {
		t.Fatalf("units inserted = %v", got)
	}
}

func TestDefinitionsPipeline_FetchFailureAborts(t *testing.T) {
	fetch := &fakeFetcher{}
	store := newFakeStore()
	p := app.NewDefinitionsPipeline(fetch, store, nil)
	if err := p.Run(context.Background(), "https://feeds.example/definitions/en"); err == nil {
		t.Fatalf("expected error when the feed itself is unreachable")
	}
}

func TestOpenContentPipeline_FullLoadTruncates(t *testing.T) {
	const sitemap = "https://feeds.example/sitemap.xml"
	const hotelA = "https://myhotel.giatamedia.com/111/xml"
	const hotelB = "https://myhotel.giatamedia.com/222/xml"

	fetch := &fakeFetcher{bodies: map[string][]byte{
		sitemap: sitemapFor(hotelA, hotelB),
		hotelA:  []byte(`<accommodation giataId="111"><names><name locale="en">A</name></names></accommodation>`),
		// hotelB is missing so its fetch fails
	}}
	store := newFakeStore()

	p := app.NewOpenContentPipeline(fetch, store, nil, "en", false)
	if err := p.Run(context.Background(), []string{sitemap}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.truncated) != len(domain.OpenContentTables) {
		t.Fatalf("truncated %d tables, want %d", len(store.truncated), len(domain.OpenContentTables))
	}
	rows := store.inserted[domain.TableAccommodations]
	if len(rows) != 1 || rows[0][0] != "111" {
		t.Fatalf("accommodations inserted = %v", rows)
	}
	// the broken document is recorded and the run continues
	if len(store.skips) != 1 || store.skips[0].giataID != "222" || store.skips[0].reason != "fetch failed" {
		t.Fatalf("skips = %+v", store.skips)
	}
}

func TestOpenContentPipeline_DeltaSkipsKnown(t *testing.T) {
	const sitemap = "https://feeds.example/sitemap.xml"
	const hotelA = "https://myhotel.giatamedia.com/111/xml"
	const hotelB = "https://myhotel.giatamedia.com/222/xml"

	fetch := &fakeFetcher{bodies: map[string][]byte{
		sitemap: sitemapFor(hotelA, hotelB),
		hotelA:  []byte(`<accommodation giataId="111"/>`),
		hotelB:  []byte(`<accommodation giataId="222"/>`),
	}}
	store := newFakeStore()
	store.existing = map[string]struct{}{"111": {}}

	p := app.NewOpenContentPipeline(fetch, store, nil, "en", true)
	if err := p.Run(context.Background(), []string{sitemap}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(store.truncated) != 0 {
		t.Fatalf("delta mode must not truncate, got %v", store.truncated)
	}
	if contains(fetch.calls, hotelA) {
		t.Fatalf("known accommodation must not be fetched")
	}
	if !contains(fetch.calls, hotelB) {
		t.Fatalf("new accommodation must be fetched")
	}
	rows := store.inserted[domain.TableAccommodations]
	if len(rows) != 1 || rows[0][0] != "222" {
		t.Fatalf("accommodations inserted = %v", rows)
	}
}

func TestOpenContentPipeline_ParseFailureIsRecorded(t *testing.T) {
	const sitemap = "https://feeds.example/sitemap.xml"
	const hotelA = "https://myhotel.giatamedia.com/111/xml"

	fetch := &fakeFetcher{bodies: map[string][]byte{
		sitemap: sitemapFor(hotelA),
		hotelA:  []byte(`this is not xml`),
	}}
	store := newFakeStore()

	p := app.NewOpenContentPipeline(fetch, store, nil, "en", false)
	if err := p.Run(context.Background(), []string{sitemap}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(store.skips) != 1 || store.skips[0].reason != "parse failed" {
		t.Fatalf("skips = %+v", store.skips)
	}
	if len(store.inserted[domain.TableAccommodations]) != 0 {
		t.Fatalf("nothing should be inserted for an unparseable document")
	}
}
