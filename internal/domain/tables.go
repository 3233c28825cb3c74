package domain

// Table names and column order match the schema consumed by the existing
// dashboard; do not reorder columns without migrating the dashboard queries.
const (
	TableDefAttributes             = "vendor_giata_definitions_attributes"
	TableDefContextTree            = "vendor_giata_definitions_contexttree"
	TableDefContextTreeFacts       = "vendor_giata_definitions_contexttree_facts"
	TableDefFacts                  = "vendor_giata_definitions_facts"
	TableDefFactsAttributes        = "vendor_giata_definitions_facts_attributes"
	TableDefFactsVariantGroupTypes = "vendor_giata_definitions_facts_variantgrouptypes"
	TableDefMotifTypes             = "vendor_giata_definitions_motif_types"
	TableDefUnits                  = "vendor_giata_definitions_units"

	TableAccommodations              = "vendor_giata_accommodations"
	TableAccommodationChains         = "vendor_giata_accommodations_chains"
	TableAccommodationFacts          = "vendor_giata_accommodations_facts"
	TableAccommodationFactAttributes = "vendor_giata_accommodations_facts_attributes"
	TableAccommodationFactVariants   = "vendor_giata_accommodations_facts_variants"
	TableAccommodationRoomtypes      = "vendor_giata_accommodations_roomtypes"
	TableChains                      = "vendor_giata_chains"
	TableCities                      = "vendor_giata_cities"
	TableDestinations                = "vendor_giata_destinations"
	TableImages                      = "vendor_giata_images"
	TableRoomtypes                   = "vendor_giata_roomtypes"
	TableTexts                       = "vendor_giata_texts"
	TableVariantGroups               = "vendor_giata_variant_groups"
	TableVariants                    = "vendor_giata_variants"

	TableImportLog = "vendor_giata_import_log"
)

// Columns lists each table's columns in insert order.
var Columns = map[string][]string{
	TableDefAttributes:             {"id", "label", "valueType", "units"},
	TableDefContextTree:            {"id", "label", "parentContextTreeId"},
	TableDefContextTreeFacts:       {"contextTreeId", "factId"},
	TableDefFacts:                  {"id", "label"},
	TableDefFactsAttributes:        {"factId", "attributeId"},
	TableDefFactsVariantGroupTypes: {"factId", "variantGroupTypeId"},
	TableDefMotifTypes:             {"id", "label"},
	TableDefUnits:                  {"id", "label"},

	TableAccommodations: {
		"giata_id", "name", "city_giata_id", "destination_giata_id", "country_code",
		"source", "rating", "address_street", "address_streetnum", "address_zip",
		"address_cityname", "address_pobox", "address_federalstate_giata_id",
		"phone", "email", "url", "geocode_accuracy", "geocode_latitude", "geocode_longitude",
	},
	TableAccommodationChains:         {"giataId", "chainId"},
	TableAccommodationFacts:          {"giataId", "factDefId"},
	TableAccommodationFactAttributes: {"giataId", "factDefId", "attributeDefId", "value", "unitDefId"},
	TableAccommodationFactVariants:   {"giataId", "factDefId", "variantId"},
	TableAccommodationRoomtypes:      {"giataId", "variantId"},
	TableChains:                      {"giataId", "name"},
	TableCities:                      {"giataId", "name"},
	TableDestinations:                {"giataId", "name"},
	TableImages: {
		"giata_id", "motif_type", "last_update", "is_hero_image",
		"image_id", "base_name", "max_width", "href",
	},
	TableRoomtypes: {
		"variantId", "category", "code", "name", "type", "view",
		"category_attribute_id", "category_attribute_name",
		"type_attribute_id", "type_attribute_name",
		"view_attribute_id", "view_attribute_name", "image_relations",
	},
	TableTexts:         {"giata_id", "last_update", "sequence", "title", "paragraph"},
	TableVariantGroups: {"variantGroupTypeId", "label"},
	TableVariants:      {"variantId", "label"},
}

// DefinitionsTables are truncated and loaded by the definitions pipeline.
var DefinitionsTables = []string{
	TableDefAttributes,
	TableDefContextTree,
	TableDefContextTreeFacts,
	TableDefFacts,
	TableDefFactsAttributes,
	TableDefFactsVariantGroupTypes,
	TableDefMotifTypes,
	TableDefUnits,
}

// AccommodationTables are written once per accommodation document, right
// after it is mapped.
var AccommodationTables = []string{
	TableAccommodations,
	TableImages,
	TableTexts,
	TableAccommodationFacts,
	TableAccommodationFactAttributes,
	TableAccommodationFactVariants,
	TableAccommodationRoomtypes,
}

// LookupTables accumulate across a whole feed batch and are flushed once at
// the end of an open-content run; the same chain/city/variant recurs across
// many accommodations.
var LookupTables = []string{
	TableChains,
	TableCities,
	TableDestinations,
	TableRoomtypes,
	TableVariantGroups,
	TableVariants,
	TableAccommodationChains,
}

// OpenContentTables is the truncate set for a full (non-delta) open-content load.
var OpenContentTables = append(append([]string{}, AccommodationTables...), LookupTables...)

// DashboardViews names the read-only datasets served by the dashboard API.
var DashboardViews = []string{
	"accommodations",
	"chains",
	"cities",
	"destinations",
	"roomtypes",
	"texts",
	"definitions_attributes",
	"definitions_contexttree",
	"definitions_facts",
	"definitions_motif_types",
	"definitions_units",
}
