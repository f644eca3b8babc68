package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Profile:
		o.printProfile(v)
	case AuthResult:
		o.printAuthResult(v)
	case Room:
		o.printRoom(v)
	case []RoomListing:
		o.printRoomList(v)
	case MoveResult:
		o.printMoveResult(v)
	case []MoveRecord:
		o.printMoveRecords(v)
	case HealthResult:
		fmt.Printf("Server status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Profile response type (matches API)
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGuest bool   `json:"is_guest"`
}

// AuthResult combines profile and token
type AuthResult struct {
	Profile      Profile `json:"profile"`
	SessionToken string  `json:"session_token"`
}

// Player response type
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	RackSize    int    `json:"rack_size"`
	Rack        string `json:"rack,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
	IsConnected bool   `json:"is_connected"`
}

// PlacedTile response type
type PlacedTile struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Letter  string `json:"letter"`
	Points  int    `json:"points"`
	IsBlank bool   `json:"is_blank,omitempty"`
	OwnerID string `json:"owner_id"`
}

// Room response type
type Room struct {
	ID              string         `json:"id"`
	Status          string         `json:"status"`
	MaxPlayers      int            `json:"max_players"`
	Players         []Player       `json:"players"`
	CurrentPlayerID string         `json:"current_player_id,omitempty"`
	Board           []PlacedTile   `json:"board"`
	BagCount        int            `json:"bag_count"`
	FinalScores     map[string]int `json:"final_scores,omitempty"`
}

// RoomListing response type
type RoomListing struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Status      string `json:"status"`
}

// WordPlay response type
type WordPlay struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MoveResult response type
type MoveResult struct {
	Words        []WordPlay `json:"words"`
	Score        int        `json:"score"`
	UsedFullRack bool       `json:"used_full_rack,omitempty"`
	Room         Room       `json:"room"`
}

// MoveRecord response type
type MoveRecord struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	Type      string    `json:"type"`
	Words     []string  `json:"words,omitempty"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("ID:    %s\n", p.ID)
	fmt.Printf("Name:  %s\n", p.Name)
	fmt.Printf("Guest: %t\n", p.IsGuest)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printProfile(a.Profile)
	fmt.Println("Session token saved")
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room %s [%s] bag: %d tiles\n", r.ID, r.Status, r.BagCount)
	for _, p := range r.Players {
		marker := " "
		if p.ID == r.CurrentPlayerID {
			marker = "*"
		}
		conn := ""
		if !p.IsConnected {
			conn = " (away)"
		}
		bot := ""
		if p.IsBot {
			bot = " (bot)"
		}
		fmt.Printf("%s %-20s %4d pts, %d tiles%s%s\n", marker, p.Name, p.Score, p.RackSize, bot, conn)
		if p.Rack != "" {
			fmt.Printf("  rack: %s\n", formatRack(p.Rack))
		}
	}
	fmt.Println(renderBoard(r.Board))
	if len(r.FinalScores) > 0 {
		fmt.Println("Final scores:")
		for id, score := range r.FinalScores {
			fmt.Printf("  %s: %d\n", id, score)
		}
	}
}

func (o *Output) printRoomList(listings []RoomListing) {
	if len(listings) == 0 {
		fmt.Println("No open rooms")
		return
	}
	fmt.Printf("%-8s %-9s %s\n", "ROOM", "STATUS", "PLAYERS")
	for _, l := range listings {
		fmt.Printf("%-8s %-9s %d/%d\n", l.ID, l.Status, l.PlayerCount, l.MaxPlayers)
	}
}

func (o *Output) printMoveResult(m MoveResult) {
	words := make([]string, len(m.Words))
	for i, w := range m.Words {
		words[i] = fmt.Sprintf("%s (%d)", w.Word, w.Score)
	}
	fmt.Printf("Played %s for %d points", strings.Join(words, ", "), m.Score)
	if m.UsedFullRack {
		fmt.Print(" including the 50 point bonus")
	}
	fmt.Println()
	o.printRoom(m.Room)
}

func (o *Output) printMoveRecords(records []MoveRecord) {
	for _, r := range records {
		when := r.Timestamp.Format("15:04:05")
		switch r.Type {
		case "place":
			fmt.Printf("[%s] %s played %s for %d\n", when, r.PlayerID, strings.Join(r.Words, ", "), r.Score)
		default:
			fmt.Printf("[%s] %s %s\n", when, r.PlayerID, r.Type)
		}
	}
}

func formatRack(rack string) string {
	letters := make([]string, 0, len(rack))
	for _, r := range rack {
		letters = append(letters, string(r))
	}
	return strings.Join(letters, " ")
}

// renderBoard draws the 15x15 grid with placed tiles
func renderBoard(tiles []PlacedTile) string {
	const size = 15

	var grid [size][size]string
	for _, t := range tiles {
		if t.Row < 0 || t.Row >= size || t.Col < 0 || t.Col >= size {
			continue
		}
		letter := t.Letter
		if t.IsBlank {
			letter = strings.ToLower(letter)
		}
		grid[t.Row][t.Col] = letter
	}

	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteString("\n")
	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%2d  ", row)
		for col := 0; col < size; col++ {
			cell := grid[row][col]
			if cell == "" {
				cell = "."
			}
			fmt.Fprintf(&sb, " %s", cell)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
