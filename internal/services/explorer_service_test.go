package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedroShimpa/chessdb-api/internal/filter"
	"github.com/pedroShimpa/chessdb-api/internal/models"
	"github.com/pedroShimpa/chessdb-api/internal/position"
	"github.com/pedroShimpa/chessdb-api/internal/repositories"
)

type fakeRepo struct {
	popularCalls int
	searchCalls  int
	countCalls   int
	err          error
}

func (f *fakeRepo) Game(_ context.Context, id uint) (*models.Game, error) {
	return &models.Game{ID: id}, f.err
}

func (f *fakeRepo) MovesInGame(context.Context, uint) ([]models.Move, error) {
	return []models.Move{{San: "e4"}}, f.err
}

func (f *fakeRepo) GameSearch(context.Context, filter.Criteria) ([]models.Game, error) {
	f.searchCalls++
	return []models.Game{{ID: 1, White: "Kasparov, G"}}, f.err
}

func (f *fakeRepo) GameCount(context.Context, filter.Criteria) (int64, error) {
	f.countCalls++
	return 41, f.err
}

func (f *fakeRepo) PositionSearch(context.Context, filter.Criteria) ([]models.Move, error) {
	return []models.Move{{San: "e4"}}, f.err
}

func (f *fakeRepo) PositionCount(context.Context, filter.Criteria) (int64, error) {
	return 1, f.err
}

func (f *fakeRepo) PopularMoves(context.Context, position.Descriptor) ([]repositories.PopularMove, error) {
	f.popularCalls++
	return []repositories.PopularMove{{Move: "e4", WhiteWon: 2, TotalCount: 2}}, f.err
}

type mapStore map[string][]byte

func (m mapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m mapStore) Set(_ context.Context, key string, value []byte) error {
	m[key] = value
	return nil
}

func TestPopularMovesCached(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewExplorerService(repo, mapStore{}, nil)
	ctx := context.Background()

	d := position.Descriptor{Fen: "8/8/8/8/8/8/8/8", CastlingAvailability: 0}
	first, err := svc.PopularMoves(ctx, d)
	require.NoError(t, err)
	second, err := svc.PopularMoves(ctx, d)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.popularCalls)
}

func TestPopularMovesInitialSharesKey(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewExplorerService(repo, mapStore{}, nil)
	ctx := context.Background()

	_, err := svc.PopularMoves(ctx, position.Descriptor{Fen: position.StartingBoard})
	require.NoError(t, err)
	_, err = svc.PopularMoves(ctx, position.Descriptor{Fen: position.StartingBoard, CastlingAvailability: 15, ActiveColour: models.Black})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.popularCalls)
}

func TestSearchGamesCachesCountAcrossPages(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewExplorerService(repo, mapStore{}, nil)
	ctx := context.Background()

	for _, offset := range []int{0, 20, 40} {
		page, err := svc.SearchGames(ctx, filter.Criteria{"white": "Kasparov, G", "pagination": filter.Criteria{"offset": offset}})
		require.NoError(t, err)
		assert.Equal(t, int64(41), page.Total)
		require.Len(t, page.Games, 1)
	}
	assert.Equal(t, 3, repo.searchCalls)
	assert.Equal(t, 1, repo.countCalls)
}

func TestErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	svc := NewExplorerService(&fakeRepo{err: boom}, nil, nil)
	ctx := context.Background()

	_, err := svc.SearchGames(ctx, filter.Criteria{})
	assert.ErrorIs(t, err, boom)
	_, err = svc.SearchPositions(ctx, filter.Criteria{})
	assert.ErrorIs(t, err, boom)
	_, err = svc.PopularMoves(ctx, position.Descriptor{Fen: position.StartingBoard})
	assert.ErrorIs(t, err, boom)
}
