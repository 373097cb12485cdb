package hub

import "encoding/json"

// GameRecord is the statistics payload for a single played game. The shape
// is owned by the hub and has changed across ktxstats versions, so only the
// fields the bot reads are modeled. Raw keeps the full payload for the
// submission record.
type GameRecord struct {
	Map       string               `json:"map"`
	Mode      string               `json:"mode"`
	Teams     []Team               `json:"teams"`
	TeamStats map[string]TeamStats `json:"team_stats"`
	Players   []Player             `json:"players"`

	Raw json.RawMessage `json:"-"`
}

// Team is one entry of the teams array. Hub rows encode it as an object
// carrying name and frags; ktxstats files use a bare name string.
type Team struct {
	Name  string
	Frags *int

	object bool
}

func (t *Team) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		t.Name = name
		return nil
	}

	var obj struct {
		Name  string `json:"name"`
		Frags *int   `json:"frags"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Name = obj.Name
	t.Frags = obj.Frags
	t.object = true
	return nil
}

// IsObject reports whether the entry used the object-shaped encoding.
func (t Team) IsObject() bool {
	return t.object
}

// TeamStats is the per-team block of the team_stats mapping. Frags is a
// pointer so an absent count is distinguishable from zero.
type TeamStats struct {
	Frags *int `json:"frags"`
}

// Player is one entry of the flat ktxstats roster.
type Player struct {
	Name  string       `json:"name"`
	Team  string       `json:"team"`
	Frags int          `json:"frags"`
	Stats *PlayerStats `json:"stats"`
}

// PlayerStats is the nested per-player stats block of newer ktxstats files.
type PlayerStats struct {
	Frags *int `json:"frags"`
}

// FragCount returns the player's frags, preferring the nested stats block
// over the top-level field.
func (p Player) FragCount() int {
	if p.Stats != nil && p.Stats.Frags != nil {
		return *p.Stats.Frags
	}
	return p.Frags
}
