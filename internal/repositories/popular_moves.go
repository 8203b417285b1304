package repositories

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pedroShimpa/chessdb-api/internal/models"
	"github.com/pedroShimpa/chessdb-api/internal/position"
)

// PopularMove holds the outcomes of games that continued with Move.
// TotalCount is always BlackWon + WhiteWon + Draw.
type PopularMove struct {
	Move       string `json:"move"`
	BlackWon   int64  `json:"black_won"`
	WhiteWon   int64  `json:"white_won"`
	Draw       int64  `json:"draw"`
	TotalCount int64  `json:"total_count"`
}

func countResult(r models.Result, alias string) string {
	return fmt.Sprintf("SUM(CASE WHEN result = %d THEN 1 ELSE 0 END) AS %s", r, alias)
}

var popularMoveColumns = []string{
	"candidate AS move",
	countResult(models.ResultBlackWon, "black_won"),
	countResult(models.ResultWhiteWon, "white_won"),
	countResult(models.ResultDraw, "draw"),
	fmt.Sprintf("SUM(CASE WHEN result IN (%d, %d, %d) THEN 1 ELSE 0 END) AS total_count",
		models.ResultBlackWon, models.ResultWhiteWon, models.ResultDraw),
}

// candidates selects (result, candidate) pairs for the matched position.
func candidates(db *gorm.DB, p position.Position) *gorm.DB {
	query := db.Table("moves").Joins("JOIN games ON games.id = moves.game_id")

	if p.Kind == position.Initial {
		// next_san is not required here: a game that ended after one ply still counts its first move.
		return query.
			Select("games.result AS result, moves.san AS candidate").
			Where("moves.fullmove_number = ?", 1).
			Where("moves.san IS NOT NULL AND moves.san <> ''")
	}

	d := p.Descriptor
	query = query.
		Select("games.result AS result, moves.next_san AS candidate").
		Where("moves.fen_position = ?", d.Fen).
		Where("moves.castling_availability = ?", d.CastlingAvailability).
		Where("moves.active_colour = ?", d.ActiveColour.Bit()).
		Where("moves.next_san IS NOT NULL")
	if d.EnPassant == nil {
		return query.Where("moves.en_passant IS NULL")
	}
	return query.Where("moves.en_passant = ?", *d.EnPassant)
}

func popularMoves(db *gorm.DB, p position.Position) ([]PopularMove, error) {
	sub := candidates(db, p)

	var rows []PopularMove
	err := db.Table("(?) AS counts", sub).
		Select(strings.Join(popularMoveColumns, ", ")).
		Group("candidate").
		Order("total_count DESC").
		Order("candidate ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
