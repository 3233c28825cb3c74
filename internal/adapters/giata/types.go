package giata

import (
	"encoding/json"
	"encoding/xml"
)

// ---------------------------------------------------------------------------
// Definitions feed (JSON)
// ---------------------------------------------------------------------------

// DefinitionsDocument is the taxonomy feed, shaped locale -> subject sections.
// Each subject section decodes into its own typed map, so dispatch by subject
// happens once at parse time; sections this importer does not know about are
// dropped during decoding.
type DefinitionsDocument map[string]DefinitionsSubjects

type DefinitionsSubjects struct {
	ContextTree map[string]ContextTreeEntry `json:"contextTree"`
	Facts       map[string]FactEntry        `json:"facts"`
	Attributes  map[string]AttributeEntry   `json:"attributes"`
	Units       map[string]LabelEntry       `json:"units"`
	MotifTypes  map[string]LabelEntry       `json:"motifTypes"`
}

// ContextTreeEntry carries at most one level of nesting; the feed never goes
// deeper than a single sub block.
type ContextTreeEntry struct {
	Label string                      `json:"label"`
	Facts []string                    `json:"facts"`
	Sub   map[string]ContextTreeEntry `json:"sub"`
}

type FactEntry struct {
	Label             string   `json:"label"`
	Attributes        []string `json:"attributes"`
	VariantGroupTypes []string `json:"variantGroupTypes"`
}

type AttributeEntry struct {
	Label     string   `json:"label"`
	ValueType string   `json:"valueType"`
	Units     []string `json:"units"`
}

type LabelEntry struct {
	Label string `json:"label"`
}

// ParseDefinitions decodes the taxonomy feed. On a malformed body it returns
// whatever partial document decoded alongside the error, so callers may log
// and continue with the partial (possibly empty) structure.
func ParseDefinitions(raw []byte) (DefinitionsDocument, error) {
	var doc DefinitionsDocument
	err := json.Unmarshal(raw, &doc)
	return doc, err
}

// ---------------------------------------------------------------------------
// Open-content feeds (XML)
// ---------------------------------------------------------------------------

// Sitemap lists one detail-document URL per accommodation.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapURL struct {
	Loc string `xml:"loc"`
}

func ParseSitemap(raw []byte) (*Sitemap, error) {
	var sm Sitemap
	if err := xml.Unmarshal(raw, &sm); err != nil {
		return nil, err
	}
	return &sm, nil
}

// AccommodationDocument is one accommodation's detail feed. Elements that are
// singular in the schema but repeat in practice (names, ratings, phones, ...)
// decode as slices and are disambiguated during mapping.
type AccommodationDocument struct {
	XMLName       xml.Name        `xml:"accommodation"`
	GiataID       string          `xml:"giataId,attr"`
	Source        string          `xml:"source"`
	Names         []LocalizedText `xml:"names>name"`
	Addresses     []Address       `xml:"addresses>address"`
	Phones        []Phone         `xml:"phones>phone"`
	Emails        []string        `xml:"emails>email"`
	URLs          []string        `xml:"urls>url"`
	Ratings       []Rating        `xml:"ratings>rating"`
	GeoCodes      []GeoCode       `xml:"geoCodes>geoCode"`
	City          *Place          `xml:"city"`
	Destination   *Place          `xml:"destination"`
	Country       Country         `xml:"country"`
	FederalState  *FederalState   `xml:"federalState"`
	Chains        []Chain         `xml:"chains>chain"`
	Facts         []Fact          `xml:"facts>fact"`
	Images        []Image         `xml:"images>image"`
	Texts         []Text          `xml:"texts>text"`
	RoomTypes     []RoomType      `xml:"roomTypes>roomType"`
	VariantGroups []VariantGroup  `xml:"variantGroups>variantGroup"`
}

func ParseAccommodation(raw []byte) (*AccommodationDocument, error) {
	var doc AccommodationDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

type LocalizedText struct {
	Locale    string `xml:"locale,attr"`
	IsDefault string `xml:"isDefault,attr"`
	Value     string `xml:",chardata"`
}

type Rating struct {
	IsDefault string `xml:"isDefault,attr"`
	Value     string `xml:",chardata"`
}

type Phone struct {
	Tech  string `xml:"tech,attr"`
	Value string `xml:",chardata"`
}

type Address struct {
	Street    string `xml:"street"`
	StreetNum string `xml:"streetNum"`
	Zip       string `xml:"zip"`
	CityName  string `xml:"cityName"`
	POBox     string `xml:"poBox"`
}

type GeoCode struct {
	Accuracy  string `xml:"accuracy,attr"`
	Latitude  string `xml:"latitude"`
	Longitude string `xml:"longitude"`
}

// Place is a city or destination reference with localized names.
type Place struct {
	GiataID string          `xml:"giataId,attr"`
	Names   []LocalizedText `xml:"names>name"`
}

type Country struct {
	Code string `xml:"code"`
}

type FederalState struct {
	GiataID string `xml:"giataId,attr"`
}

type Chain struct {
	GiataID string          `xml:"giataId,attr"`
	Names   []LocalizedText `xml:"names>name"`
}

// Fact links an accommodation to a fact definition; the optional instance
// carries attribute values and the room variants the fact applies to.
type Fact struct {
	FactDefID string        `xml:"factDefId,attr"`
	Instance  *FactInstance `xml:"factInstance"`
}

type FactInstance struct {
	Attributes *FactAttributeList `xml:"attributes"`
	AppliesTo  *AppliesTo         `xml:"appliesTo"`
}

type FactAttributeList struct {
	Attributes []FactAttribute `xml:"attribute"`
}

type FactAttribute struct {
	AttributeDefID string `xml:"attributeDefId,attr"`
	Value          string `xml:"value,attr"`
	UnitDefID      string `xml:"unitDefId,attr"`
}

type AppliesTo struct {
	Variants []VariantRef `xml:"variant"`
}

type VariantRef struct {
	VariantID string `xml:"variantId,attr"`
}

type Image struct {
	MotifType  string      `xml:"motifType,attr"`
	LastUpdate string      `xml:"lastUpdate,attr"`
	HeroImage  string      `xml:"heroImage,attr"`
	ID         string      `xml:"id"`
	BaseName   string      `xml:"baseName"`
	Sizes      []ImageSize `xml:"sizes>size"`
}

type ImageSize struct {
	MaxWidth string `xml:"maxWidth,attr"`
	Href     string `xml:"href,attr"`
}

type Text struct {
	Locale     string        `xml:"locale,attr"`
	LastUpdate string        `xml:"lastUpdate,attr"`
	Sections   []TextSection `xml:"sections>section"`
}

type TextSection struct {
	Title string `xml:"title"`
	Para  string `xml:"para"`
}

type RoomType struct {
	VariantID      string         `xml:"variantId,attr"`
	Category       string         `xml:"category"`
	Code           string         `xml:"code"`
	Name           string         `xml:"name"`
	Type           string         `xml:"type"`
	View           string         `xml:"view"`
	CategoryInfo   *AttributeInfo `xml:"categoryInformation"`
	TypeInfo       *AttributeInfo `xml:"typeInformation"`
	ViewInfo       *AttributeInfo `xml:"viewInformation"`
	ImageRelations []string       `xml:"imageRelations>imageId"`
}

type AttributeInfo struct {
	AttributeDefID string `xml:"attributeDefId"`
	Name           string `xml:"name"`
}

type VariantGroup struct {
	VariantGroupTypeID string    `xml:"variantGroupTypeId,attr"`
	Label              string    `xml:"label"`
	Variants           []Variant `xml:"variants>variant"`
}

type Variant struct {
	VariantID string `xml:"variantId,attr"`
	Label     string `xml:"label"`
}
