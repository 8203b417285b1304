package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pedroShimpa/chessdb-api/internal/cache"
	"github.com/pedroShimpa/chessdb-api/internal/filter"
	"github.com/pedroShimpa/chessdb-api/internal/logger"
	"github.com/pedroShimpa/chessdb-api/internal/models"
	"github.com/pedroShimpa/chessdb-api/internal/position"
	"github.com/pedroShimpa/chessdb-api/internal/repositories"
)

// Repository is the read surface of repositories.Repository.
type Repository interface {
	Game(ctx context.Context, id uint) (*models.Game, error)
	MovesInGame(ctx context.Context, gameID uint) ([]models.Move, error)
	GameSearch(ctx context.Context, criteria filter.Criteria) ([]models.Game, error)
	GameCount(ctx context.Context, criteria filter.Criteria) (int64, error)
	PositionSearch(ctx context.Context, criteria filter.Criteria) ([]models.Move, error)
	PositionCount(ctx context.Context, criteria filter.Criteria) (int64, error)
	PopularMoves(ctx context.Context, d position.Descriptor) ([]repositories.PopularMove, error)
}

type GamePage struct {
	Games []models.Game `json:"games"`
	Total int64         `json:"total"`
}

type PositionPage struct {
	Moves []models.Move `json:"moves"`
	Total int64         `json:"total"`
}

type ExplorerService struct {
	Repo  Repository
	Cache cache.Store
	Log   *logger.Logger
}

func NewExplorerService(repo Repository, store cache.Store, baseLog *logger.Logger) *ExplorerService {
	if store == nil {
		store = cache.Nop{}
	}
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &ExplorerService{Repo: repo, Cache: store, Log: baseLog.With("service", "ExplorerService")}
}

func (s *ExplorerService) Game(ctx context.Context, id uint) (*models.Game, error) {
	return s.Repo.Game(ctx, id)
}

func (s *ExplorerService) MovesInGame(ctx context.Context, gameID uint) ([]models.Move, error) {
	return s.Repo.MovesInGame(ctx, gameID)
}

// SearchGames returns one page of games plus the unpaginated total. The
// total ignores the pagination offset, so it is cached separately.
func (s *ExplorerService) SearchGames(ctx context.Context, criteria filter.Criteria) (*GamePage, error) {
	key, err := criteriaKey("games", criteria)
	if err != nil {
		return nil, err
	}
	games, err := cache.Fetch(ctx, s.Cache, key, func(ctx context.Context) ([]models.Game, error) {
		return s.Repo.GameSearch(ctx, criteria)
	})
	if err != nil {
		return nil, fmt.Errorf("game search: %w", err)
	}

	countKey, err := criteriaKey("games:count", withoutPagination(criteria))
	if err != nil {
		return nil, err
	}
	total, err := cache.Fetch(ctx, s.Cache, countKey, func(ctx context.Context) (int64, error) {
		return s.Repo.GameCount(ctx, criteria)
	})
	if err != nil {
		return nil, fmt.Errorf("game count: %w", err)
	}
	return &GamePage{Games: games, Total: total}, nil
}

// SearchPositions is not cached; position criteria are too sparse to reuse.
func (s *ExplorerService) SearchPositions(ctx context.Context, criteria filter.Criteria) (*PositionPage, error) {
	moves, err := s.Repo.PositionSearch(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("position search: %w", err)
	}
	total, err := s.Repo.PositionCount(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("position count: %w", err)
	}
	return &PositionPage{Moves: moves, Total: total}, nil
}

func (s *ExplorerService) PopularMoves(ctx context.Context, d position.Descriptor) ([]repositories.PopularMove, error) {
	key := cache.Key("popular", d.Key())
	if position.Normalize(d).Kind == position.Initial {
		key = cache.Key("popular", "initial")
	}
	rows, err := cache.Fetch(ctx, s.Cache, key, func(ctx context.Context) ([]repositories.PopularMove, error) {
		return s.Repo.PopularMoves(ctx, d)
	})
	if err != nil {
		s.Log.Error("popular moves failed", "position", d.Key(), "error", err)
		return nil, fmt.Errorf("popular moves: %w", err)
	}
	return rows, nil
}

// criteriaKey relies on encoding/json writing map keys in sorted order.
func criteriaKey(namespace string, criteria filter.Criteria) (string, error) {
	raw, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("%w: %v", filter.ErrBadValue, err)
	}
	return cache.Key(namespace, string(raw)), nil
}

func withoutPagination(criteria filter.Criteria) filter.Criteria {
	out := make(filter.Criteria, len(criteria))
	for k, v := range criteria {
		if k != "pagination" {
			out[k] = v
		}
	}
	return out
}
