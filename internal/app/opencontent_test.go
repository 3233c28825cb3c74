package app_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"giata_content/internal/adapters/giata"
	"giata_content/internal/app"
	"giata_content/internal/domain"
)

const accommodationXML = `
<accommodation giataId="54321">
  <source>giata</source>
  <names>
    <name locale="de" isDefault="true">Strandhotel Test</name>
    <name locale="en">Test Beach Hotel</name>
  </names>
  <addresses>
    <address>
      <street>Hauptstr.</street><streetNum>5</streetNum>
      <zip>12345</zip><cityName>Teststadt</cityName><poBox></poBox>
    </address>
  </addresses>
  <phones>
    <phone tech="phone">+49 30 1</phone>
    <phone tech="fax">+49 30 2</phone>
  </phones>
  <emails><email>info@test.example</email></emails>
  <urls><url>https://test.example</url></urls>
  <ratings><rating isDefault="true">4,5</rating></ratings>
  <geoCodes>
    <geoCode accuracy="exact"><latitude>54.1</latitude><longitude>13.2</longitude></geoCode>
  </geoCodes>
  <city giataId="77">
    <names><name locale="en">Testcity</name><name locale="de">Teststadt</name></names>
  </city>
  <destination giataId="88">
    <names><name locale="en">Testcoast</name></names>
  </destination>
  <country><code>DE</code></country>
  <federalState giataId="99"></federalState>
  <chains>
    <chain giataId="55"><names><name>TestChain</name></names></chain>
  </chains>
  <facts>
    <fact factDefId="f1">
      <factInstance>
        <attributes><attribute attributeDefId="a1" value="25" unitDefId="u1"/></attributes>
        <appliesTo><variant variantId="v1"/></appliesTo>
      </factInstance>
    </fact>
    <fact factDefId="f2"/>
  </facts>
  <images>
    <image motifType="m1" lastUpdate="2024-01-02" heroImage="true">
      <id>img1</id><baseName>base</baseName>
      <sizes>
        <size maxWidth="800" href="https://img/800"/>
        <size maxWidth="1024" href="https://img/1024"/>
      </sizes>
    </image>
  </images>
  <texts>
    <text locale="en" lastUpdate="2024-01-03">
      <sections>
        <section><title>Location</title><para>Near the beach.</para></section>
        <section><title>Rooms</title><para>Spacious.</para></section>
      </sections>
    </text>
    <text locale="de" lastUpdate="2024-01-03">
      <sections><section><title>Lage</title><para>Am Strand.</para></section></sections>
    </text>
    <text locale="en" lastUpdate="2024-01-04">
      <sections><section><title>Sports</title><para>Tennis.</para></section></sections>
    </text>
  </texts>
  <roomTypes>
    <roomType variantId="v1">
      <category>DZ</category><code>DZM</code><name>Double Room</name>
      <type>room</type><view>sea</view>
      <categoryInformation><attributeDefId>ca</attributeDefId><name>Double</name></categoryInformation>
      <imageRelations><imageId>img1</imageId><imageId>img2</imageId></imageRelations>
    </roomType>
  </roomTypes>
  <variantGroups>
    <variantGroup variantGroupTypeId="vg1">
      <label>Rooms</label>
      <variants>
        <variant variantId="v1"><label>Double</label></variant>
        <variant variantId=""><label>Nameless</label></variant>
      </variants>
    </variantGroup>
    <variantGroup variantGroupTypeId="vg2">
      <label>Boards</label>
      <variants><variant variantId="v2"><label>Half board</label></variant></variants>
    </variantGroup>
  </variantGroups>
</accommodation>`

func mapFixture(t *testing.T) (per, lookups *app.Batch) {
	t.Helper()
	doc, err := giata.ParseAccommodation([]byte(accommodationXML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	per, lookups = app.NewBatch(), app.NewBatch()
	app.MapAccommodation(doc, "en", per, lookups)
	return per, lookups
}

func TestMapAccommodation_MainRow(t *testing.T) {
	per, _ := mapFixture(t)

	rows := per.Rows(domain.TableAccommodations)
	if len(rows) != 1 {
		t.Fatalf("expected one accommodation row, got %d", len(rows))
	}
	want := []string{
		"54321", "Test Beach Hotel", "77", "88", "DE", "giata", "4.5",
		"Hauptstr.", "5", "12345", "Teststadt", "", "99",
		"+49 30 1", "info@test.example", "https://test.example",
		"exact", "54.1", "13.2",
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("row = %v\nwant  %v", rows[0], want)
	}
}

func TestMapAccommodation_ImagesFanOutPerSize(t *testing.T) {
	per, _ := mapFixture(t)

	rows := per.Rows(domain.TableImages)
	if len(rows) != 2 {
		t.Fatalf("expected one row per size, got %d", len(rows))
	}
	if !hasRow(rows, []string{"54321", "m1", "2024-01-02", "1", "img1", "base", "800", "https://img/800"}) {
		t.Fatalf("missing 800px row, rows: %v", rows)
	}
	if !hasRow(rows, []string{"54321", "m1", "2024-01-02", "1", "img1", "base", "1024", "https://img/1024"}) {
		t.Fatalf("missing 1024px row, rows: %v", rows)
	}
}

func TestMapAccommodation_TextsLocaleAndSequence(t *testing.T) {
	per, _ := mapFixture(t)

	rows := per.Rows(domain.TableTexts)
	if len(rows) != 3 {
		t.Fatalf("expected 3 english sections, got %d: %v", len(rows), rows)
	}
	// sequence spans all matching text blocks of the document
	for _, want := range [][]string{
		{"54321", "2024-01-03", "1", "Location", "Near the beach."},
		{"54321", "2024-01-03", "2", "Rooms", "Spacious."},
		{"54321", "2024-01-04", "3", "Sports", "Tennis."},
	} {
		if !hasRow(rows, want) {
			t.Fatalf("missing text row %v, rows: %v", want, rows)
		}
	}
}

func TestMapAccommodation_Facts(t *testing.T) {
	per, _ := mapFixture(t)

	if !hasRow(per.Rows(domain.TableAccommodationFacts), []string{"54321", "f1"}) ||
		!hasRow(per.Rows(domain.TableAccommodationFacts), []string{"54321", "f2"}) {
		t.Fatalf("fact rows missing, got %v", per.Rows(domain.TableAccommodationFacts))
	}
	if !hasRow(per.Rows(domain.TableAccommodationFactAttributes), []string{"54321", "f1", "a1", "25", "u1"}) {
		t.Fatalf("fact attribute row missing")
	}
	if !hasRow(per.Rows(domain.TableAccommodationFactVariants), []string{"54321", "f1", "v1"}) {
		t.Fatalf("fact variant row missing")
	}
	if !hasRow(per.Rows(domain.TableAccommodationRoomtypes), []string{"54321", "v1"}) {
		t.Fatalf("roomtype link row missing")
	}
}

func TestMapAccommodation_Lookups(t *testing.T) {
	_, lookups := mapFixture(t)

	if !hasRow(lookups.Rows(domain.TableAccommodationChains), []string{"54321", "55"}) {
		t.Fatalf("chain edge missing")
	}
	if !hasRow(lookups.Rows(domain.TableChains), []string{"55", "TestChain"}) {
		t.Fatalf("chain lookup missing")
	}
	// only the configured locale's place name survives
	cities := lookups.Rows(domain.TableCities)
	if len(cities) != 1 || !hasRow(cities, []string{"77", "Testcity"}) {
		t.Fatalf("city lookup = %v", cities)
	}
	if !hasRow(lookups.Rows(domain.TableDestinations), []string{"88", "Testcoast"}) {
		t.Fatalf("destination lookup missing")
	}

	rts := lookups.Rows(domain.TableRoomtypes)
	want := []string{
		"v1", "DZ", "DZM", "Double Room", "room", "sea",
		"ca", "Double", "", "", "", "", "img1|img2",
	}
	if len(rts) != 1 || !reflect.DeepEqual(rts[0], want) {
		t.Fatalf("roomtype lookup = %v\nwant %v", rts, want)
	}

	vgs := lookups.Rows(domain.TableVariantGroups)
	if !hasRow(vgs, []string{"vg1", "Rooms"}) || !hasRow(vgs, []string{"vg2", "Boards"}) {
		t.Fatalf("variant groups = %v", vgs)
	}
	vs := lookups.Rows(domain.TableVariants)
	if len(vs) != 2 || !hasRow(vs, []string{"v1", "Double"}) || !hasRow(vs, []string{"v2", "Half board"}) {
		t.Fatalf("variants = %v, empty ids must be dropped", vs)
	}
}

func TestMapAccommodation_SequenceRestartsPerAccommodation(t *testing.T) {
	first := []byte(`
<accommodation giataId="111">
  <texts>
    <text locale="en" lastUpdate="2024-01-01">
      <sections>
        <section><title>One</title><para>First.</para></section>
        <section><title>Two</title><para>Second.</para></section>
      </sections>
    </text>
  </texts>
</accommodation>`)
	second := []byte(`
<accommodation giataId="222">
  <texts>
    <text locale="en" lastUpdate="2024-01-01">
      <sections><section><title>Other</title><para>Restart.</para></section></sections>
    </text>
  </texts>
</accommodation>`)

	lookups := app.NewBatch()
	// one batch per document, the way the pipeline flushes them
	for i, raw := range [][]byte{first, second} {
		doc, err := giata.ParseAccommodation(raw)
		if err != nil {
			t.Fatalf("parse doc %d: %v", i, err)
		}
		per := app.NewBatch()
		app.MapAccommodation(doc, "en", per, lookups)

		rows := per.Rows(domain.TableTexts)
		if i == 0 {
			if len(rows) != 2 || !hasRow(rows, []string{"111", "2024-01-01", "1", "One", "First."}) ||
				!hasRow(rows, []string{"111", "2024-01-01", "2", "Two", "Second."}) {
				t.Fatalf("first document texts = %v", rows)
			}
			continue
		}
		if len(rows) != 1 || !hasRow(rows, []string{"222", "2024-01-01", "1", "Other", "Restart."}) {
			t.Fatalf("second document must restart its sequence at 1, got %v", rows)
		}
	}
}

func TestMapAccommodation_WarnsOnRepeatedSingularElement(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	raw := []byte(`
<accommodation giataId="333">
  <names>
    <name locale="en">First Name</name>
    <name locale="en">Second Name</name>
  </names>
  <ratings><rating isDefault="true">4</rating></ratings>
</accommodation>`)
	doc, err := giata.ParseAccommodation(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	app.MapAccommodation(doc, "en", app.NewBatch(), app.NewBatch())

	out := buf.String()
	if !strings.Contains(out, "multiple entries for singular element") {
		t.Fatalf("expected a warning, log output: %q", out)
	}
	if !strings.Contains(out, `"giata_id":"333"`) || !strings.Contains(out, `"element":"name"`) {
		t.Fatalf("warning must carry giata_id and element, got: %q", out)
	}
	// the single rating must not warn
	if strings.Contains(out, `"element":"rating"`) {
		t.Fatalf("unexpected rating warning: %q", out)
	}
}

func TestParseSitemap(t *testing.T) {
	raw := []byte(`<?xml version="1.0"?>
<urlset>
  <url><loc>https://myhotel.giatamedia.com/111/xml</loc></url>
  <url><loc>https://myhotel.giatamedia.com/222/xml</loc></url>
</urlset>`)
	sm, err := giata.ParseSitemap(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sm.URLs) != 2 || sm.URLs[0].Loc != "https://myhotel.giatamedia.com/111/xml" {
		t.Fatalf("unexpected sitemap: %+v", sm)
	}
}
