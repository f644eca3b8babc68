package request

// CreateGuestRequest is the request body for creating a guest profile
type CreateGuestRequest struct {
	Name string `json:"name"`
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room
type CreateRoomRequest struct {
	MaxPlayers int `json:"max_players,omitempty"`
}

// PlacementRequest is one tile of a move. For a blank tile, letter is the
// letter it stands for and is_blank is set.
type PlacementRequest struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Letter  string `json:"letter"`
	IsBlank bool   `json:"is_blank,omitempty"`
}

// SubmitMoveRequest is the request body for playing tiles
type SubmitMoveRequest struct {
	Placements []PlacementRequest `json:"placements"`
}

// ExchangeRequest is the request body for exchanging rack tiles.
// Letters uses "*" for a blank.
type ExchangeRequest struct {
	Letters string `json:"letters"`
}

// AddBotRequest is the request body for adding a bot to a room
type AddBotRequest struct {
	Strategy string `json:"strategy,omitempty"`
}
