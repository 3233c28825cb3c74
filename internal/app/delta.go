package app

import (
	"net/url"
	"strings"
)

// giataIDFromURL extracts the accommodation identifier embedded in a sitemap
// URL path, e.g. https://myhotel.giatamedia.com/12345/xml -> "12345". Returns
// empty when no identifier segment is present.
func giataIDFromURL(loc string) string {
	u, err := url.Parse(strings.TrimSpace(loc))
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segs) - 1; i >= 0; i-- {
		if s := segs[i]; s != "" && s != "xml" {
			return s
		}
	}
	return ""
}
