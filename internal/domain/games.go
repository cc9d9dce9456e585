package domain

import "fmt"

// gameTitles maps DS/Wii game codes to readable titles. The registry is
// advisory: unknown codes are accepted everywhere, lookups fall back to the
// raw code.
var gameTitles = map[string]string{
	// Pokemon Diamond/Pearl/Platinum
	"ADAD": "Pokemon Diamond (Germany)",
	"ADAE": "Pokemon Diamond (USA)",
	"ADAF": "Pokemon Diamond (France)",
	"ADAI": "Pokemon Diamond (Italy)",
	"ADAJ": "Pokemon Diamond (Japan)",
	"ADAK": "Pokemon Diamond (Korea)",
	"ADAS": "Pokemon Diamond (Spain)",
	"APAE": "Pokemon Pearl (USA)",
	"APAJ": "Pokemon Pearl (Japan)",
	"CPUD": "Pokemon Platinum (Germany)",
	"CPUE": "Pokemon Platinum (USA)",
	"CPUF": "Pokemon Platinum (France)",
	"CPUI": "Pokemon Platinum (Italy)",
	"CPUJ": "Pokemon Platinum (Japan)",
	"CPUK": "Pokemon Platinum (Korea)",
	"CPUS": "Pokemon Platinum (Spain)",

	// Pokemon HeartGold/SoulSilver
	"IPKD": "Pokemon HeartGold (Germany)",
	"IPKE": "Pokemon HeartGold (USA)",
	"IPKF": "Pokemon HeartGold (France)",
	"IPKI": "Pokemon HeartGold (Italy)",
	"IPKJ": "Pokemon HeartGold (Japan)",
	"IPKK": "Pokemon HeartGold (Korea)",
	"IPKS": "Pokemon HeartGold (Spain)",
	"IPGD": "Pokemon SoulSilver (Germany)",
	"IPGE": "Pokemon SoulSilver (USA)",
	"IPGF": "Pokemon SoulSilver (France)",
	"IPGI": "Pokemon SoulSilver (Italy)",
	"IPGJ": "Pokemon SoulSilver (Japan)",
	"IPGK": "Pokemon SoulSilver (Korea)",
	"IPGS": "Pokemon SoulSilver (Spain)",

	// Pokemon Black/White
	"IRBD": "Pokemon Black (Germany)",
	"IRBE": "Pokemon Black (USA)",
	"IRBF": "Pokemon Black (France)",
	"IRBI": "Pokemon Black (Italy)",
	"IRBJ": "Pokemon Black (Japan)",
	"IRBK": "Pokemon Black (Korea)",
	"IRBS": "Pokemon Black (Spain)",
	"IRAD": "Pokemon White (Germany)",
	"IRAE": "Pokemon White (USA)",
	"IRAF": "Pokemon White (France)",
	"IRAI": "Pokemon White (Italy)",
	"IRAJ": "Pokemon White (Japan)",
	"IRAK": "Pokemon White (Korea)",
	"IRAS": "Pokemon White (Spain)",

	// Pokemon Black 2/White 2
	"IREO": "Pokemon Black 2 (Europe)",
	"IREE": "Pokemon Black 2 (USA)",
	"IREJ": "Pokemon Black 2 (Japan)",
	"IREK": "Pokemon Black 2 (Korea)",
	"IRDO": "Pokemon White 2 (Europe)",
	"IRDE": "Pokemon White 2 (USA)",
	"IRDJ": "Pokemon White 2 (Japan)",
	"IRDK": "Pokemon White 2 (Korea)",

	// Mario Kart Wii
	"RMCE": "Mario Kart Wii (USA)",
	"RMCJ": "Mario Kart Wii (Japan)",
	"RMCK": "Mario Kart Wii (Korea)",
	"RMCP": "Mario Kart Wii (Europe)",

	// Animal Crossing
	"B3RE": "Animal Crossing: City Folk (USA)",
	"B3RJ": "Animal Crossing: City Folk (Japan)",
	"B3RP": "Animal Crossing: City Folk (Europe)",
}

// GameTitle returns the readable title for a game code, or a placeholder
// built from the raw code when the game is not in the registry.
func GameTitle(gameID string) string {
	if title, ok := gameTitles[gameID]; ok {
		return title
	}
	return fmt.Sprintf("Unknown Game (%s)", gameID)
}

// KnownGame reports whether the game code is in the registry.
func KnownGame(gameID string) bool {
	_, ok := gameTitles[gameID]
	return ok
}
