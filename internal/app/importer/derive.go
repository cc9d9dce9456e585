package importer

import (
	"strings"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// regionMarkers is checked in order: the first marker found as a substring
// of the uppercased filename wins. US/EN, EU/UK and KR/KO are aliases.
var regionMarkers = []struct {
	region  string
	markers []string
}{
	{"US", []string{"US", "EN"}},
	{"EU", []string{"EU", "UK"}},
	{"JP", []string{"JP"}},
	{"KR", []string{"KR", "KO"}},
	{"AU", []string{"AU"}},
	{"DE", []string{"DE"}},
	{"FR", []string{"FR"}},
	{"IT", []string{"IT"}},
	{"ES", []string{"ES"}},
}

// DetectRegion derives the region code from markers in the filename.
// No marker means the gift is offered to all regions.
func DetectRegion(filename string) string {
	upper := strings.ToUpper(filename)
	for _, rm := range regionMarkers {
		for _, marker := range rm.markers {
			if strings.Contains(upper, marker) {
				return rm.region
			}
		}
	}
	return "ALL"
}

// DeriveTitle builds a display title from a gift filename: the extension is
// stripped, underscores become spaces, each word is capitalized, and the
// game's registry title is prefixed.
func DeriveTitle(gameID, filename, ext string) string {
	name := strings.TrimSuffix(filename, ext)
	name = strings.ReplaceAll(name, "_", " ")
	return domain.GameTitle(gameID) + " - " + titleCase(name)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
