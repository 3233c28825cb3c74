package mysql

const insertSkipSQL = `
INSERT INTO vendor_giata_import_log (giata_id, url, reason)
VALUES (?, ?, ?)
`

const selectAccommodationIDsSQL = `
SELECT giata_id FROM vendor_giata_accommodations
`

// -----------------------------------------------------------------------------
// DASHBOARD VIEWS
// -----------------------------------------------------------------------------

// Each view is one whitelisted read query; the repo appends ORDER BY from the
// same column whitelist. Joined views mirror the dashboard the schema was
// built for.

type view struct {
	columns []string
	query   string
}

var views = map[string]view{
	"accommodations": {
		columns: []string{"giata_id", "name", "city", "destination", "country_code", "source", "rating", "chains", "facts"},
		query: `
SELECT
  a.giata_id,
  a.name,
  ci.name AS city,
  de.name AS destination,
  a.country_code,
  a.source,
  a.rating,
  GROUP_CONCAT(DISTINCT ch.name ORDER BY ch.name SEPARATOR ', ') AS chains,
  GROUP_CONCAT(DISTINCT df.label ORDER BY df.label SEPARATOR ', ') AS facts
FROM vendor_giata_accommodations a
LEFT JOIN vendor_giata_cities ci ON ci.giataId = a.city_giata_id
LEFT JOIN vendor_giata_destinations de ON de.giataId = a.destination_giata_id
LEFT JOIN vendor_giata_accommodations_chains ac ON ac.giataId = a.giata_id
LEFT JOIN vendor_giata_chains ch ON ch.giataId = ac.chainId
LEFT JOIN vendor_giata_accommodations_facts af ON af.giataId = a.giata_id
LEFT JOIN vendor_giata_definitions_facts df ON df.id = af.factDefId
GROUP BY a.giata_id, a.name, ci.name, de.name, a.country_code, a.source, a.rating`,
	},
	"chains": {
		columns: []string{"giataId", "name"},
		query:   "SELECT giataId, name FROM vendor_giata_chains",
	},
	"cities": {
		columns: []string{"giataId", "name"},
		query:   "SELECT giataId, name FROM vendor_giata_cities",
	},
	"destinations": {
		columns: []string{"giataId", "name"},
		query:   "SELECT giataId, name FROM vendor_giata_destinations",
	},
	"roomtypes": {
		columns: []string{"variantId", "variant", "category", "code", "name", "type", "view", "image_relations"},
		query: `
SELECT
  r.variantId,
  v.label AS variant,
  r.category,
  r.code,
  r.name,
  r.type,
  r.` + "`view`" + `,
  r.image_relations
FROM vendor_giata_roomtypes r
LEFT JOIN vendor_giata_variants v ON v.variantId = r.variantId`,
	},
	"texts": {
		columns: []string{"giata_id", "last_update", "sequence", "title", "paragraph"},
		query:   "SELECT giata_id, last_update, sequence, title, paragraph FROM vendor_giata_texts",
	},
	"definitions_attributes": {
		columns: []string{"id", "label", "valueType", "units"},
		query:   "SELECT id, label, valueType, units FROM vendor_giata_definitions_attributes",
	},
	"definitions_contexttree": {
		columns: []string{"id", "label", "parent", "facts"},
		query: `
SELECT
  t1.id,
  t1.label,
  t2.label AS parent,
  GROUP_CONCAT(DISTINCT f.label ORDER BY f.label SEPARATOR ', ') AS facts
FROM vendor_giata_definitions_contexttree t1
LEFT JOIN vendor_giata_definitions_contexttree t2 ON t2.id = t1.parentContextTreeId
LEFT JOIN vendor_giata_definitions_contexttree_facts cf ON cf.contextTreeId = t1.id
LEFT JOIN vendor_giata_definitions_facts f ON f.id = cf.factId
GROUP BY t1.id, t1.label, t2.label`,
	},
	"definitions_facts": {
		columns: []string{"id", "label"},
		query:   "SELECT id, label FROM vendor_giata_definitions_facts",
	},
	"definitions_motif_types": {
		columns: []string{"id", "label"},
		query:   "SELECT id, label FROM vendor_giata_definitions_motif_types",
	},
	"definitions_units": {
		columns: []string{"id", "label"},
		query:   "SELECT id, label FROM vendor_giata_definitions_units",
	},
}
