package repositories

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pedroShimpa/chessdb-api/internal/filter"
	"github.com/pedroShimpa/chessdb-api/internal/models"
)

func eitherColour(query *gorm.DB, player string) *gorm.DB {
	return query.Where("(games.white = ? OR games.black = ?)", player, player)
}

var gameFilters = filter.Once(func() filter.Chain {
	return filter.New(
		filter.Eq("games.white", "white"),
		filter.Eq("games.black", "black"),
		filter.NewUnit(filter.String(eitherColour), "either_colour"),
		filter.NewUnit(filter.String(eitherColour), "opponent"),
		filter.NewUnit(filter.Int(func(query *gorm.DB, elo int) *gorm.DB {
			return query.Where("games.white_elo >= ? AND games.black_elo >= ?", elo, elo)
		}), "minimum_elo"),
		filter.NewUnit(filter.Int(func(query *gorm.DB, elo int) *gorm.DB {
			return query.Where("games.white_elo <= ? AND games.black_elo <= ?", elo, elo)
		}), "maximum_elo"),
		filter.Eq("games.event", "event"),
		filter.Eq("games.site", "site"),
		filter.NewUnit(filter.Date(func(query *gorm.DB, date datatypes.Date) *gorm.DB {
			return query.Where("games.date >= ?", date)
		}), "from_date"),
		filter.NewUnit(filter.Date(func(query *gorm.DB, date datatypes.Date) *gorm.DB {
			return query.Where("games.date <= ?", date)
		}), "to_date"),
		filter.Eq("games.round", "round"),
		filter.NewUnit(filter.String(func(query *gorm.DB, token string) *gorm.DB {
			result, err := models.ParseResult(token)
			if err != nil {
				_ = query.AddError(err)
				return query
			}
			return query.Where("games.result = ?", result)
		}), "result"),
		filter.Eq("games.eco", "eco"),
	)
})

var paginatedGameFilters = filter.Once(func() filter.Chain {
	return filter.Pagination().Compose(gameFilters())
})

// searchGames expects chain to include pagination.
func searchGames(db *gorm.DB, chain filter.Chain, criteria filter.Criteria) ([]models.Game, error) {
	query := chain.Apply(db.Model(&models.Game{}), criteria)
	var games []models.Game
	if err := query.Order("games.id ASC").Limit(PageSize).Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func countGames(db *gorm.DB, chain filter.Chain, criteria filter.Criteria) (int64, error) {
	var total int64
	if err := chain.Apply(db.Model(&models.Game{}), criteria).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
