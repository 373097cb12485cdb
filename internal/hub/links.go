package hub

import "regexp"

// Matches hub.quakeworld.nu URLs and extracts the game ID.
// Supported forms:
//
//	/game/{id}
//	/qtv/{id}
//	/games/?gameId={id}
//	/games?gameId={id}
var hubURLPattern = regexp.MustCompile(`hub\.quakeworld\.nu/(?:(?:game|qtv)/(\d+)|games/?\?[^\s]*?gameId=(\d+))`)

// Link is a hub match URL found in message text. The game ID is kept as
// text so oversized numeric IDs survive round-tripping.
type Link struct {
	URL    string
	GameID string
}

// ExtractLinks scans free-form text for hub match URLs and returns them in
// first-match order. Partial URLs with a missing or non-numeric ID are not
// matched. Extraction is stateless: the same text always yields the same
// result.
func ExtractLinks(text string) []Link {
	var links []Link
	for _, m := range hubURLPattern.FindAllStringSubmatch(text, -1) {
		id := m[1]
		if id == "" {
			id = m[2]
		}
		links = append(links, Link{URL: m[0], GameID: id})
	}
	return links
}
