package app

import (
	"strings"

	"giata_content/internal/adapters/giata"
	"giata_content/internal/domain"
)

// MapAccommodation flattens one accommodation document. Rows scoped to this
// document go into per, which the pipeline inserts right away; lookup rows
// shared across the whole feed batch accumulate in lookups and are flushed
// once at the end of the run.
func MapAccommodation(doc *giata.AccommodationDocument, locale string, per, lookups *Batch) {
	logMultiValued(doc)

	mapAccommodationRow(doc, locale, per)
	mapImages(doc, per)
	mapTexts(doc, locale, per)
	mapFacts(doc, per)
	for _, rt := range doc.RoomTypes {
		per.Add(domain.TableAccommodationRoomtypes, doc.GiataID, rt.VariantID)
	}

	mapChains(doc, lookups)
	mapPlace(doc.City, domain.TableCities, locale, lookups)
	mapPlace(doc.Destination, domain.TableDestinations, locale, lookups)
	mapRoomtypes(doc, lookups)
	mapVariantGroups(doc, lookups)
}

func mapAccommodationRow(doc *giata.AccommodationDocument, locale string, per *Batch) {
	var addr giata.Address
	if len(doc.Addresses) > 0 {
		addr = doc.Addresses[0]
	}
	// geocode fields stay empty when the geoCodes element is absent
	var geo giata.GeoCode
	if len(doc.GeoCodes) > 0 {
		geo = doc.GeoCodes[0]
	}
	var cityID, destID, stateID string
	if doc.City != nil {
		cityID = doc.City.GiataID
	}
	if doc.Destination != nil {
		destID = doc.Destination.GiataID
	}
	if doc.FederalState != nil {
		stateID = doc.FederalState.GiataID
	}

	per.Add(domain.TableAccommodations,
		doc.GiataID,
		resolveName(doc.Names, locale),
		cityID,
		destID,
		doc.Country.Code,
		doc.Source,
		resolveRating(doc.Ratings),
		addr.Street,
		addr.StreetNum,
		addr.Zip,
		addr.CityName,
		addr.POBox,
		stateID,
		resolvePhone(doc.Phones),
		joinValues(doc.Emails),
		joinValues(doc.URLs),
		geo.Accuracy,
		geo.Latitude,
		geo.Longitude,
	)
}

// mapImages emits one row per (image, size) pair.
func mapImages(doc *giata.AccommodationDocument, per *Batch) {
	for _, img := range doc.Images {
		for _, size := range img.Sizes {
			per.Add(domain.TableImages,
				doc.GiataID,
				img.MotifType,
				img.LastUpdate,
				img.HeroImage == "true",
				img.ID,
				img.BaseName,
				size.MaxWidth,
				size.Href,
			)
		}
	}
}

// mapTexts keeps only texts in the configured locale. The section sequence is
// 1-based and spans all matching text blocks of this accommodation; the next
// accommodation starts over at 1.
func mapTexts(doc *giata.AccommodationDocument, locale string, per *Batch) {
	seq := 0
	for _, t := range doc.Texts {
		if t.Locale != locale {
			continue
		}
		for _, s := range t.Sections {
			seq++
			per.Add(domain.TableTexts, doc.GiataID, t.LastUpdate, seq, s.Title, s.Para)
		}
	}
}

func mapFacts(doc *giata.AccommodationDocument, per *Batch) {
	for _, f := range doc.Facts {
		per.Add(domain.TableAccommodationFacts, doc.GiataID, f.FactDefID)
		if f.Instance == nil {
			continue
		}
		if f.Instance.Attributes != nil {
			for _, a := range f.Instance.Attributes.Attributes {
				per.Add(domain.TableAccommodationFactAttributes,
					doc.GiataID, f.FactDefID, a.AttributeDefID, a.Value, a.UnitDefID)
			}
		}
		if f.Instance.AppliesTo != nil {
			for _, v := range f.Instance.AppliesTo.Variants {
				per.Add(domain.TableAccommodationFactVariants, doc.GiataID, f.FactDefID, v.VariantID)
			}
		}
	}
}

// mapChains contributes both the chain lookup row and the accommodation-chain
// edge. Chain names carry no locale attribute; the first name is taken.
func mapChains(doc *giata.AccommodationDocument, lookups *Batch) {
	for _, c := range doc.Chains {
		lookups.Add(domain.TableAccommodationChains, doc.GiataID, c.GiataID)
		var name string
		if len(c.Names) > 0 {
			name = c.Names[0].Value
		}
		lookups.Add(domain.TableChains, c.GiataID, name)
	}
}

// mapPlace contributes a city or destination lookup row, kept only when the
// name matches the configured locale and both id and name are non-empty.
func mapPlace(place *giata.Place, table, locale string, lookups *Batch) {
	if place == nil || place.GiataID == "" {
		return
	}
	for _, n := range place.Names {
		if n.Locale != locale {
			continue
		}
		if name := strings.TrimSpace(n.Value); name != "" {
			lookups.Add(table, place.GiataID, name)
		}
	}
}

func mapRoomtypes(doc *giata.AccommodationDocument, lookups *Batch) {
	for _, rt := range doc.RoomTypes {
		imageIDs := make([]string, 0, len(rt.ImageRelations))
		for _, id := range rt.ImageRelations {
			imageIDs = append(imageIDs, strings.TrimSpace(id))
		}
		catID, catName := attributeInfo(rt.CategoryInfo)
		typeID, typeName := attributeInfo(rt.TypeInfo)
		viewID, viewName := attributeInfo(rt.ViewInfo)
		lookups.Add(domain.TableRoomtypes,
			rt.VariantID,
			rt.Category,
			rt.Code,
			rt.Name,
			rt.Type,
			rt.View,
			catID, catName,
			typeID, typeName,
			viewID, viewName,
			strings.Join(imageIDs, "|"),
		)
	}
}

func attributeInfo(info *giata.AttributeInfo) (id, name string) {
	if info == nil {
		return "", ""
	}
	return info.AttributeDefID, info.Name
}

// mapVariantGroups walks every variant group and its variants; rows with an
// empty id or label are dropped.
func mapVariantGroups(doc *giata.AccommodationDocument, lookups *Batch) {
	for _, vg := range doc.VariantGroups {
		if vg.VariantGroupTypeID != "" && strings.TrimSpace(vg.Label) != "" {
			lookups.Add(domain.TableVariantGroups, vg.VariantGroupTypeID, vg.Label)
		}
		for _, v := range vg.Variants {
			if v.VariantID != "" && strings.TrimSpace(v.Label) != "" {
				lookups.Add(domain.TableVariants, v.VariantID, v.Label)
			}
		}
	}
}
