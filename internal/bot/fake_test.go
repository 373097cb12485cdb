package bot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Xerialen/qwicky-discord-bot/internal/hub"
	"github.com/Xerialen/qwicky-discord-bot/internal/store"
)

// testBackend fakes the three remote services the bot talks to: the hub
// games table, the demo CDN and the QWICKY Supabase project.
type testBackend struct {
	mu    sync.Mutex
	games map[string]string         // game ID -> ktxstats JSON served by the CDN
	regs  map[string]map[string]any // channel ID -> registration row
	subs  map[string]bool           // channel|game pairs already recorded

	hubDB *httptest.Server
	cdn   *httptest.Server
	api   *httptest.Server
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	tb := &testBackend{
		games: make(map[string]string),
		regs:  make(map[string]map[string]any),
		subs:  make(map[string]bool),
	}

	tb.cdn = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), ".json")
		tb.mu.Lock()
		stats, ok := tb.games[id]
		tb.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, stats)
	}))
	t.Cleanup(tb.cdn.Close)

	tb.hubDB = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
		tb.mu.Lock()
		_, ok := tb.games[id]
		tb.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			fmt.Fprint(w, "[]")
			return
		}
		fmt.Fprintf(w, `[{"id":%s,"demo_source_url":"%s/%s.json"}]`, id, tb.cdn.URL, id)
	}))
	t.Cleanup(tb.hubDB.Close)

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/tournament_channels", tb.handleRegistrations)
	mux.HandleFunc("/rest/v1/match_submissions", tb.handleSubmissions)
	tb.api = httptest.NewServer(mux)
	t.Cleanup(tb.api.Close)

	return tb
}

func (tb *testBackend) bot() *Bot {
	return &Bot{
		store: store.NewClient(tb.api.URL, "service-key"),
		hub:   hub.NewClient(tb.hubDB.URL+"/v1_games", tb.cdn.URL, "hub-key"),
	}
}

func (tb *testBackend) register(channelID, tournamentID, divisionID string) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	row := map[string]any{
		"discord_guild_id":   "guild-1",
		"discord_channel_id": channelID,
		"tournament_id":      tournamentID,
		"registered_by":      "user-1",
		"created_at":         time.Now().UTC().Format(time.RFC3339),
	}
	if divisionID != "" {
		row["division_id"] = divisionID
	}
	tb.regs[channelID] = row
}

func (tb *testBackend) handleRegistrations(w http.ResponseWriter, r *http.Request) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		channel := strings.TrimPrefix(r.URL.Query().Get("discord_channel_id"), "eq.")
		rows := []map[string]any{}
		if row, ok := tb.regs[channel]; ok {
			rows = append(rows, row)
		}
		writeRows(w, http.StatusOK, rows)
	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		row["created_at"] = time.Now().UTC().Format(time.RFC3339)
		channel, _ := row["discord_channel_id"].(string)
		tb.regs[channel] = row
		writeRows(w, http.StatusCreated, []map[string]any{row})
	case http.MethodDelete:
		channel := strings.TrimPrefix(r.URL.Query().Get("discord_channel_id"), "eq.")
		delete(tb.regs, channel)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (tb *testBackend) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	var row map[string]any
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := fmt.Sprintf("%v|%v", row["discord_channel_id"], row["game_id"])
	if tb.subs[key] {
		writeRows(w, http.StatusConflict, map[string]string{
			"code":    "23505",
			"message": `duplicate key value violates unique constraint "match_submissions_channel_game_key"`,
		})
		return
	}
	tb.subs[key] = true
	row["id"] = len(tb.subs)
	row["created_at"] = time.Now().UTC().Format(time.RFC3339)
	writeRows(w, http.StatusCreated, []map[string]any{row})
}

func writeRows(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func message(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "msg-1",
		ChannelID: "chan-1",
		GuildID:   "guild-1",
		Content:   content,
		Author:    &discordgo.User{ID: "user-1", Username: "grue42", GlobalName: "Grue"},
	}}
}

func commandInteraction(name string, opts map[string]string) *discordgo.InteractionCreate {
	var options []*discordgo.ApplicationCommandInteractionDataOption
	for optName, value := range opts {
		options = append(options, &discordgo.ApplicationCommandInteractionDataOption{
			Name:  optName,
			Type:  discordgo.ApplicationCommandOptionString,
			Value: value,
		})
	}
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "chan-1",
		GuildID:   "guild-1",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "user-1"}},
		Data:      discordgo.ApplicationCommandInteractionData{Name: name, Options: options},
	}}
}
