package response

import (
	"time"

	"github.com/lexroom/lexroom/internal/model"
	"github.com/lexroom/lexroom/internal/services/auth"
)

// Profile represents a player identity in API responses
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGuest bool   `json:"is_guest"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		ID:      string(p.ID),
		Name:    p.Name,
		IsGuest: p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Profile      Profile `json:"profile"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Profile:      ProfileFromModel(&s.Profile),
		SessionToken: s.Token,
	}
}

// Player represents a seated player. Rack contents are only included for
// the viewer's own seat; everyone else sees a count.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	RackSize    int    `json:"rack_size"`
	Rack        string `json:"rack,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
	IsConnected bool   `json:"is_connected"`
}

// PlayerFromModel converts a seated player, exposing the rack only to its owner
func PlayerFromModel(p *model.Player, viewerID model.PlayerID) Player {
	out := Player{
		ID:          string(p.ID),
		Name:        p.Name,
		Score:       p.Score,
		RackSize:    p.Rack.Count(),
		IsBot:       p.IsBot,
		IsConnected: p.IsConnected,
	}
	if p.ID == viewerID {
		out.Rack = p.Rack.Letters()
	}
	return out
}

// Spectator represents a room observer
type Spectator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PlacedTile is one occupied board cell
type PlacedTile struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Letter  string `json:"letter"`
	Points  int    `json:"points"`
	IsBlank bool   `json:"is_blank,omitempty"`
	OwnerID string `json:"owner_id"`
}

// BoardFromModel flattens the board to its occupied cells
func BoardFromModel(b *model.Board) []PlacedTile {
	tiles := make([]PlacedTile, 0, b.TileCount())
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			tile := b.TileAt(row, col)
			if tile == nil {
				continue
			}
			tiles = append(tiles, PlacedTile{
				Row:     row,
				Col:     col,
				Letter:  string(tile.Letter),
				Points:  tile.Points,
				IsBlank: tile.IsBlank,
				OwnerID: string(tile.OwnerID),
			})
		}
	}
	return tiles
}

// Room represents a room in API responses
type Room struct {
	ID                 string         `json:"id"`
	Status             string         `json:"status"`
	MaxPlayers         int            `json:"max_players"`
	Players            []Player       `json:"players"`
	Spectators         []Spectator    `json:"spectators,omitempty"`
	CurrentPlayerIndex int            `json:"current_player_index"`
	CurrentPlayerID    string         `json:"current_player_id,omitempty"`
	Board              []PlacedTile   `json:"board"`
	BagCount           int            `json:"bag_count"`
	ScorelessTurns     int            `json:"scoreless_turns"`
	FinalScores        map[string]int `json:"final_scores,omitempty"`
}

// RoomFromModel converts a room to its API shape for a specific viewer
func RoomFromModel(room *model.Room, viewerID model.PlayerID) Room {
	players := make([]Player, len(room.Players))
	for i, p := range room.Players {
		players[i] = PlayerFromModel(p, viewerID)
	}

	var spectators []Spectator
	for _, sp := range room.Spectators {
		spectators = append(spectators, Spectator{ID: string(sp.ID), Name: sp.Name})
	}

	out := Room{
		ID:                 string(room.ID),
		Status:             string(room.Status),
		MaxPlayers:         room.MaxPlayers,
		Players:            players,
		Spectators:         spectators,
		CurrentPlayerIndex: room.CurrentPlayerIndex,
		Board:              BoardFromModel(room.Board),
		BagCount:           room.Bag.Count(),
		ScorelessTurns:     room.ScorelessTurns,
	}

	if room.Status == model.RoomStatusActive {
		if current := room.CurrentPlayer(); current != nil {
			out.CurrentPlayerID = string(current.ID)
		}
	}

	if room.FinalScores != nil {
		out.FinalScores = make(map[string]int, len(room.FinalScores))
		for pid, score := range room.FinalScores {
			out.FinalScores[string(pid)] = score
		}
	}

	return out
}

// RoomListing is one row of the open-rooms list
type RoomListing struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Status      string `json:"status"`
}

// RoomListingFromModel converts a model.RoomListing
func RoomListingFromModel(l model.RoomListing) RoomListing {
	return RoomListing{
		ID:          string(l.ID),
		PlayerCount: l.PlayerCount,
		MaxPlayers:  l.MaxPlayers,
		Status:      string(l.Status),
	}
}

// WordPlay is one scored word from a committed move
type WordPlay struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MoveResult is the response for a committed placement
type MoveResult struct {
	Words        []WordPlay `json:"words"`
	Score        int        `json:"score"`
	UsedFullRack bool       `json:"used_full_rack,omitempty"`
	Room         Room       `json:"room"`
}

// MoveResultFromModel converts a move result plus the post-move room state
func MoveResultFromModel(result *model.MoveResult, room *model.Room, viewerID model.PlayerID) MoveResult {
	words := make([]WordPlay, len(result.Words))
	for i, w := range result.Words {
		words[i] = WordPlay{Word: w.Word, Score: w.Score}
	}
	return MoveResult{
		Words:        words,
		Score:        result.Score,
		UsedFullRack: result.UsedFullRack,
		Room:         RoomFromModel(room, viewerID),
	}
}

// MoveRecord is one row of a room's move history
type MoveRecord struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Type      string    `json:"type"`
	Words     []string  `json:"words,omitempty"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// MoveRecordFromModel converts a model.MoveRecord
func MoveRecordFromModel(r model.MoveRecord) MoveRecord {
	return MoveRecord{
		ID:        r.ID,
		PlayerID:  string(r.PlayerID),
		Type:      string(r.Type),
		Words:     r.Words,
		Score:     r.Score,
		Timestamp: r.Timestamp,
	}
}
