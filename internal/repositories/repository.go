package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedroShimpa/chessdb-api/internal/filter"
	"github.com/pedroShimpa/chessdb-api/internal/logger"
	"github.com/pedroShimpa/chessdb-api/internal/models"
	"github.com/pedroShimpa/chessdb-api/internal/position"
)

// PageSize is the number of rows returned by every search.
const PageSize = 20

var ErrGameNotFound = errors.New("game not found")

// Repository is the read-only entry point over the games and moves tables.
// It is safe for concurrent use.
type Repository struct {
	DB  *gorm.DB
	log *logger.Logger

	gameFilters           func() filter.Chain
	gameSearchFilters     func() filter.Chain
	positionFilters       func() filter.Chain
	positionSearchFilters func() filter.Chain
}

func NewRepository(db *gorm.DB, baseLog *logger.Logger) *Repository {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &Repository{
		DB:                    db,
		log:                   baseLog.With("repo", "Repository"),
		gameFilters:           gameFilters,
		gameSearchFilters:     paginatedGameFilters,
		positionFilters:       positionFilters,
		positionSearchFilters: paginatedPositionFilters,
	}
}

func (r *Repository) Game(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.DB.WithContext(ctx).First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// MovesInGame returns the plies of a game in play order.
func (r *Repository) MovesInGame(ctx context.Context, gameID uint) ([]models.Move, error) {
	var moves []models.Move
	err := r.DB.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("fullmove_number ASC").
		Order("active_colour ASC").
		Find(&moves).Error
	if err != nil {
		return nil, err
	}
	return moves, nil
}

func (r *Repository) GameSearch(ctx context.Context, criteria filter.Criteria) ([]models.Game, error) {
	return searchGames(r.DB.WithContext(ctx), r.gameSearchFilters(), criteria)
}

func (r *Repository) GameCount(ctx context.Context, criteria filter.Criteria) (int64, error) {
	return countGames(r.DB.WithContext(ctx), r.gameFilters(), criteria)
}

func (r *Repository) PositionSearch(ctx context.Context, criteria filter.Criteria) ([]models.Move, error) {
	return searchPositions(r.DB.WithContext(ctx), r.positionSearchFilters(), criteria)
}

func (r *Repository) PositionCount(ctx context.Context, criteria filter.Criteria) (int64, error) {
	return countPositions(r.DB.WithContext(ctx), r.positionFilters(), criteria)
}

func (r *Repository) PopularMoves(ctx context.Context, d position.Descriptor) ([]PopularMove, error) {
	p := position.Normalize(d)
	rows, err := popularMoves(r.DB.WithContext(ctx), p)
	if err != nil {
		return nil, err
	}
	r.log.Debug("popular moves", "kind", p.Kind.String(), "candidates", len(rows))
	return rows, nil
}
