package importer

import "testing"

func TestDetectRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{"secret_key_US.myg", "US"},
		{"secret_key_EN.myg", "US"},
		{"members_card_EU.myg", "EU"},
		{"members_card_UK.myg", "EU"},
		{"oaks_letter_JP.myg", "JP"},
		{"azure_flute_KR.myg", "KR"},
		{"azure_flute_KO.myg", "KR"},
		{"gift_AU.myg", "AU"},
		{"wunsch_DE.myg", "DE"},
		{"bon_FR.myg", "FR"},
		{"regalo_IT.myg", "IT"},
		// earlier markers win even when hidden inside a word:
		// GESCHENK contains EN, CADEAU contains AU.
		{"geschenk_DE.myg", "US"},
		{"cadeau_FR.myg", "AU"},
		// US/EN markers win over later ones when both appear.
		{"US_and_JP.myg", "US"},
		// lowercase markers match too
		{"secret_key_us.myg", "US"},
		{"mystery_gift.myg", "ALL"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			if got := DetectRegion(tt.filename); got != tt.want {
				t.Errorf("DetectRegion(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDeriveTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		gameID   string
		filename string
		want     string
	}{
		{
			name:     "known game",
			gameID:   "CPUE",
			filename: "secret_key.myg",
			want:     "Pokemon Platinum (USA) - Secret Key",
		},
		{
			name:     "multi word",
			gameID:   "IPKE",
			filename: "yellow_forest_route.myg",
			want:     "Pokemon HeartGold (USA) - Yellow Forest Route",
		},
		{
			name:     "unknown game falls back to code",
			gameID:   "ZZZZ",
			filename: "gift.myg",
			want:     "Unknown Game (ZZZZ) - Gift",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DeriveTitle(tt.gameID, tt.filename, ".myg"); got != tt.want {
				t.Errorf("DeriveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
