// Package position normalizes board-position descriptors for the
// popularity query.
package position

import (
	"fmt"
	"strconv"

	"github.com/notnil/chess"

	"github.com/pedroShimpa/chessdb-api/internal/models"
)

// StartingBoard is the board field of the standard starting FEN.
const StartingBoard = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// Castling availability bits.
const (
	WhiteKingSide  = 1
	WhiteQueenSide = 2
	BlackKingSide  = 4
	BlackQueenSide = 8
)

// Descriptor identifies a board state. EnPassant is a square index
// (a1=0 .. h8=63) or nil.
type Descriptor struct {
	Fen                  string        `json:"fen"`
	CastlingAvailability int           `json:"castling_availability"`
	ActiveColour         models.Colour `json:"active_colour"`
	EnPassant            *int          `json:"en_passant"`
}

// Key renders the descriptor as a stable string, e.g. for cache keys.
func (d Descriptor) Key() string {
	ep := "-"
	if d.EnPassant != nil {
		ep = strconv.Itoa(*d.EnPassant)
	}
	return fmt.Sprintf("%s|%d|%s|%s", d.Fen, d.CastlingAvailability, d.ActiveColour.Bit(), ep)
}

// Kind selects how a position is matched.
type Kind int

const (
	// Initial matches every game's first ply and ignores the rest of the
	// descriptor.
	Initial Kind = iota
	// Exact matches the full (fen, castling, colour, en passant) tuple.
	Exact
)

func (k Kind) String() string {
	if k == Initial {
		return "initial"
	}
	return "exact"
}

// Position is the normalized form of a Descriptor.
type Position struct {
	Kind       Kind
	Descriptor Descriptor
}

// Normalize picks the Initial variant for the starting board and Exact
// otherwise.
func Normalize(d Descriptor) Position {
	if d.Fen == StartingBoard {
		return Position{Kind: Initial}
	}
	return Position{Kind: Exact, Descriptor: d}
}

// ParseFEN decodes a full six-field FEN into a Descriptor.
func ParseFEN(fen string) (Descriptor, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return Descriptor{}, fmt.Errorf("parse fen: %w", err)
	}
	pos := chess.NewGame(opt).Position()

	d := Descriptor{
		Fen:          pos.Board().String(),
		ActiveColour: models.White,
	}
	if pos.Turn() == chess.Black {
		d.ActiveColour = models.Black
	}

	rights := pos.CastleRights()
	if rights.CanCastle(chess.White, chess.KingSide) {
		d.CastlingAvailability |= WhiteKingSide
	}
	if rights.CanCastle(chess.White, chess.QueenSide) {
		d.CastlingAvailability |= WhiteQueenSide
	}
	if rights.CanCastle(chess.Black, chess.KingSide) {
		d.CastlingAvailability |= BlackKingSide
	}
	if rights.CanCastle(chess.Black, chess.QueenSide) {
		d.CastlingAvailability |= BlackQueenSide
	}

	if sq := pos.EnPassantSquare(); sq != chess.NoSquare {
		ep := int(sq)
		d.EnPassant = &ep
	}
	return d, nil
}
