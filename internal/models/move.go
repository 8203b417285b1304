package models

// Move is the position reached after San was played. NextSan is nil on the
// last recorded ply of a game.
type Move struct {
	ID                   uint    `gorm:"primaryKey" json:"id"`
	GameID               uint    `gorm:"not null;index" json:"game_id"`
	Game                 *Game   `gorm:"constraint:OnDelete:CASCADE" json:"game,omitempty"`
	FenPosition          string  `gorm:"size:72;index:idx_moves_position" json:"fen_position"`
	San                  string  `json:"san"`
	NextSan              *string `json:"next_san"`
	ActiveColour         Colour  `gorm:"index:idx_moves_position" json:"active_colour"`
	FullmoveNumber       int     `gorm:"index" json:"fullmove_number"`
	CastlingAvailability int     `gorm:"type:smallint;index:idx_moves_position" json:"castling_availability"`
	HalfmoveClock        int     `gorm:"type:smallint" json:"halfmove_clock"`
	EnPassant            *int    `gorm:"type:smallint;index:idx_moves_position" json:"en_passant"`
}
