package taxonomy

import "strings"

// CategoryFallback is returned for any industry phrase the table does
// not know. Searches still work; they just cast the widest net.
const CategoryFallback = "establishment"

// placeTypes maps free-text industry phrases onto the fixed place-type
// vocabulary the nearby search understands. Lookup is exact-phrase on
// the lowercased, trimmed input.
var placeTypes = map[string]string{
	"business":       "establishment",
	"all":            "establishment",
	"restaurant":     "restaurant",
	"restaurants":    "restaurant",
	"cafe":           "cafe",
	"coffee":         "cafe",
	"coffee shop":    "cafe",
	"bar":            "bar",
	"bars":           "bar",
	"pub":            "bar",
	"bakery":         "bakery",
	"plumber":        "plumber",
	"plumbing":       "plumber",
	"electrician":    "electrician",
	"lawyer":         "lawyer",
	"attorney":       "lawyer",
	"law firm":       "lawyer",
	"dentist":        "dentist",
	"dental":         "dentist",
	"doctor":         "doctor",
	"physician":      "doctor",
	"salon":          "beauty_salon",
	"beauty salon":   "beauty_salon",
	"hair salon":     "hair_care",
	"barber":         "hair_care",
	"gym":            "gym",
	"fitness":        "gym",
	"fitness center": "gym",
	"real estate":    "real_estate_agency",
	"realtor":        "real_estate_agency",
	"accountant":     "accounting",
	"accounting":     "accounting",
	"cpa":            "accounting",
	"store":          "store",
	"shop":           "store",
	"retail":         "store",
	"boutique":       "clothing_store",
	"clothing":       "clothing_store",
}

// PlaceType resolves an industry phrase to a place-type token.
// It never fails; unknown input falls back to CategoryFallback.
func PlaceType(industry string) string {
	if t, ok := placeTypes[strings.ToLower(strings.TrimSpace(industry))]; ok {
		return t
	}
	return CategoryFallback
}
