package app

import (
	"strings"

	"giata_content/internal/adapters/giata"
	"giata_content/internal/domain"
)

// MapDefinitions flattens one taxonomy document into the eight definitions
// tables. The feed nests a locale code at the top level (the feed URL already
// selects it); all locales present are walked.
func MapDefinitions(doc giata.DefinitionsDocument, b *Batch) {
	for _, subjects := range doc {
		for id, entry := range subjects.ContextTree {
			mapContextTreeNode(id, entry, b)
		}
		for id, entry := range subjects.Facts {
			b.Add(domain.TableDefFacts, id, entry.Label)
			for _, attrID := range entry.Attributes {
				b.Add(domain.TableDefFactsAttributes, id, attrID)
			}
			for _, vgtID := range entry.VariantGroupTypes {
				b.Add(domain.TableDefFactsVariantGroupTypes, id, vgtID)
			}
		}
		for id, entry := range subjects.Attributes {
			b.Add(domain.TableDefAttributes, id, entry.Label, entry.ValueType, strings.Join(entry.Units, "|"))
		}
		for id, entry := range subjects.Units {
			b.Add(domain.TableDefUnits, id, entry.Label)
		}
		for id, entry := range subjects.MotifTypes {
			b.Add(domain.TableDefMotifTypes, id, entry.Label)
		}
	}
}

// mapContextTreeNode emits one root node plus its fact edges, then the same
// for each child. Children carry the root as parent; the feed nests at most
// one sub level.
func mapContextTreeNode(id string, entry giata.ContextTreeEntry, b *Batch) {
	b.Add(domain.TableDefContextTree, id, entry.Label, "")
	for _, factID := range entry.Facts {
		b.Add(domain.TableDefContextTreeFacts, id, factID)
	}
	for subID, sub := range entry.Sub {
		b.Add(domain.TableDefContextTree, subID, sub.Label, id)
		for _, factID := range sub.Facts {
			b.Add(domain.TableDefContextTreeFacts, subID, factID)
		}
	}
}
