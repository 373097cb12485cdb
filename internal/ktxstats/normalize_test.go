package ktxstats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Xerialen/qwicky-discord-bot/internal/hub"
)

func record(t *testing.T, data string) *hub.GameRecord {
	t.Helper()
	var rec hub.GameRecord
	require.NoError(t, json.Unmarshal([]byte(data), &rec))
	return &rec
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Scoreboard
	}{
		{
			name: "object teams carry frags directly",
			data: `{"teams":[{"name":"Red","frags":10},{"name":"Blue","frags":8}]}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "10", Team2Name: "Blue", Team2Score: "8"},
		},
		{
			name: "object team with missing frags degrades to placeholder",
			data: `{"teams":[{"name":"Red"},{"name":"Blue","frags":8}]}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "?", Team2Name: "Blue", Team2Score: "8"},
		},
		{
			name: "team_stats lookup by name",
			data: `{"teams":["Red","Blue"],"team_stats":{"Red":{"frags":10}}}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "10", Team2Name: "Blue", Team2Score: "?"},
		},
		{
			name: "player roster summed per team",
			data: `{"teams":["Red","Blue"],"players":[{"team":"Red","frags":5},{"team":"Red","frags":5},{"team":"Blue","frags":3}]}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "10", Team2Name: "Blue", Team2Score: "3"},
		},
		{
			name: "nested player stats override flat frags",
			data: `{"teams":["Red","Blue"],"players":[{"team":"Red","frags":1,"stats":{"frags":9}},{"team":"Blue","frags":3}]}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "9", Team2Name: "Blue", Team2Score: "3"},
		},
		{
			name: "players on other teams ignored",
			data: `{"teams":["Red","Blue"],"players":[{"team":"Red","frags":4},{"team":"Spec","frags":99}]}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "4", Team2Name: "Blue", Team2Score: "0"},
		},
		{
			name: "bare names with no stats at all",
			data: `{"teams":["Red","Blue"]}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "?", Team2Name: "Blue", Team2Score: "?"},
		},
		{
			name: "single team",
			data: `{"teams":["Red"],"team_stats":{"Red":{"frags":12}}}`,
			want: Scoreboard{Team1Name: "Red", Team1Score: "12", Team2Name: "?", Team2Score: "?"},
		},
		{
			name: "empty record",
			data: `{}`,
			want: Scoreboard{Team1Name: "?", Team1Score: "?", Team2Name: "?", Team2Score: "?"},
		},
		{
			name: "encoded team names are decoded for display but not for lookup",
			data: `{"teams":["red","Blue"],"team_stats":{"red":{"frags":7},"Blue":{"frags":2}}}`,
			want: Scoreboard{Team1Name: "[red]", Team1Score: "7", Team2Name: "Blue", Team2Score: "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(record(t, tt.data)))
		})
	}
}

func TestNormalizeNeverMutates(t *testing.T) {
	rec := record(t, `{"teams":["Red","Blue"],"players":[{"team":"Red","frags":5}]}`)

	first := Normalize(rec)
	second := Normalize(rec)

	require.Equal(t, first, second)
}
