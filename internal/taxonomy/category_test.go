package taxonomy

import "testing"

func TestPlaceType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cafe", "cafe"},
		{"coffee shop", "cafe"},
		{"Coffee Shop", "cafe"},
		{"  restaurants  ", "restaurant"},
		{"PUB", "bar"},
		{"law firm", "lawyer"},
		{"CPA", "accounting"},
		{"realtor", "real_estate_agency"},
		{"boutique", "clothing_store"},
		{"business", "establishment"},
		{"xyz-nonsense", "establishment"},
		{"", "establishment"},
	}
	for _, c := range cases {
		if got := PlaceType(c.in); got != c.want {
			t.Errorf("PlaceType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Every value in the table must be a member of the closed vocabulary,
// so a search never gets handed a type the upstream rejects.
func TestPlaceTypeVocabulary(t *testing.T) {
	vocab := map[string]bool{
		"restaurant": true, "cafe": true, "bar": true, "bakery": true,
		"plumber": true, "electrician": true, "lawyer": true,
		"dentist": true, "doctor": true, "beauty_salon": true,
		"hair_care": true, "gym": true, "real_estate_agency": true,
		"accounting": true, "store": true, "clothing_store": true,
		"establishment": true,
	}
	for phrase, typ := range placeTypes {
		if !vocab[typ] {
			t.Errorf("phrase %q maps to %q, not in vocabulary", phrase, typ)
		}
	}
}
