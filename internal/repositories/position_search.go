package repositories

import (
	"fmt"

	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/pedroShimpa/chessdb-api/internal/filter"
	"github.com/pedroShimpa/chessdb-api/internal/models"
)

// activeColour compares by the stored bit representation.
func activeColour(query *gorm.DB, value any) *gorm.DB {
	colour, ok := value.(models.Colour)
	if !ok {
		s, err := cast.ToStringE(value)
		if err == nil {
			err = colour.Scan(s)
		}
		if err != nil {
			_ = query.AddError(fmt.Errorf("%w: active_colour: %v", filter.ErrBadValue, err))
			return query
		}
	}
	return query.Where("moves.active_colour = ?", colour.Bit())
}

func enPassant(query *gorm.DB, value any) *gorm.DB {
	if value == nil {
		return query.Where("moves.en_passant IS NULL")
	}
	return filter.Int(func(query *gorm.DB, square int) *gorm.DB {
		return query.Where("moves.en_passant = ?", square)
	})(query, value)
}

var positionFilters = filter.Once(func() filter.Chain {
	return filter.New(
		filter.NewUnit(activeColour, "position", "active_colour"),
		filter.NewUnit(filter.Int(func(query *gorm.DB, castling int) *gorm.DB {
			return query.Where("moves.castling_availability = ?", castling)
		}), "position", "castling_availability"),
		filter.Eq("moves.fen_position", "position", "fen_position"),
		filter.NewUnit(enPassant, "position", "en_passant"),
	)
})

var paginatedPositionFilters = filter.Once(func() filter.Chain {
	return filter.Pagination().Compose(positionFilters())
})

// searchPositions expects chain to include pagination.
func searchPositions(db *gorm.DB, chain filter.Chain, criteria filter.Criteria) ([]models.Move, error) {
	query := chain.Apply(db.Model(&models.Move{}).InnerJoins("Game"), criteria)
	var moves []models.Move
	if err := query.Order("moves.id ASC").Limit(PageSize).Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

func countPositions(db *gorm.DB, chain filter.Chain, criteria filter.Criteria) (int64, error) {
	query := db.Model(&models.Move{}).Joins("JOIN games ON games.id = moves.game_id")
	var total int64
	if err := chain.Apply(query, criteria).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
