package conversations

import (
	"regexp"
)

// productIDPattern matches the catalog's identifier convention: a
// lowercase 'i' immediately followed by digits (e.g. i7041, i8501).
var productIDPattern = regexp.MustCompile(`i[0-9]+`)

// ExtractProductIDs returns every catalog identifier mentioned in the
// text, de-duplicated in first-mention order. It is a stand-in for real
// entity extraction and intentionally nothing more than this regex.
func ExtractProductIDs(text string) []string {
	matches := productIDPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, id := range matches {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
