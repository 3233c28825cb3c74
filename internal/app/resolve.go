package app

import (
	"strings"

	"github.com/rs/zerolog/log"

	"giata_content/internal/adapters/giata"
)

// resolveName picks the display name: the first entry in the configured
// locale wins; with no locale match the provider default wins; otherwise
// empty.
func resolveName(names []giata.LocalizedText, locale string) string {
	for _, n := range names {
		if n.Locale == locale {
			return strings.TrimSpace(n.Value)
		}
	}
	for _, n := range names {
		if n.IsDefault == "true" {
			return strings.TrimSpace(n.Value)
		}
	}
	return ""
}

// resolveRating takes the provider-default rating with the decimal comma
// normalized to a point. Locale plays no role for ratings.
func resolveRating(ratings []giata.Rating) string {
	for _, r := range ratings {
		if r.IsDefault == "true" {
			return strings.ReplaceAll(strings.TrimSpace(r.Value), ",", ".")
		}
	}
	return ""
}

// resolvePhone joins every entry tagged tech="phone"; fax and other tech
// values are dropped.
func resolvePhone(phones []giata.Phone) string {
	var out []string
	for _, p := range phones {
		if p.Tech != "phone" {
			continue
		}
		if v := strings.TrimSpace(p.Value); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, ", ")
}

// joinValues joins all raw values; the feed carries no disambiguation
// attribute for emails and urls.
func joinValues(values []string) string {
	var out []string
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

// logMultiValued reports sub-elements that are singular in the schema but
// repeat in this document. Diagnostic only; resolution proceeds regardless.
func logMultiValued(doc *giata.AccommodationDocument) {
	multi := func(n int, element string) {
		if n > 1 {
			log.Warn().
				Str("giata_id", doc.GiataID).
				Str("element", element).
				Int("count", n).
				Msg("multiple entries for singular element")
		}
	}
	multi(len(doc.Addresses), "address")
	multi(len(doc.Emails), "email")
	multi(len(doc.GeoCodes), "geoCode")
	multi(len(doc.Names), "name")
	multi(len(doc.Phones), "phone")
	multi(len(doc.Ratings), "rating")
	multi(len(doc.URLs), "url")
}
