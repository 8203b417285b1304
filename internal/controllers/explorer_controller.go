package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pedroShimpa/chessdb-api/internal/filter"
	"github.com/pedroShimpa/chessdb-api/internal/models"
	"github.com/pedroShimpa/chessdb-api/internal/position"
	"github.com/pedroShimpa/chessdb-api/internal/repositories"
	"github.com/pedroShimpa/chessdb-api/internal/services"
)

type Explorer interface {
	Game(ctx context.Context, id uint) (*models.Game, error)
	MovesInGame(ctx context.Context, gameID uint) ([]models.Move, error)
	SearchGames(ctx context.Context, criteria filter.Criteria) (*services.GamePage, error)
	SearchPositions(ctx context.Context, criteria filter.Criteria) (*services.PositionPage, error)
	PopularMoves(ctx context.Context, d position.Descriptor) ([]repositories.PopularMove, error)
}

type ExplorerController struct {
	Explorer Explorer
}

var gameParams = []string{
	"white", "black", "either_colour", "opponent", "minimum_elo", "maximum_elo",
	"event", "site", "from_date", "to_date", "round", "result", "eco",
}

var positionParams = []string{"active_colour", "castling_availability", "fen_position", "en_passant"}

func (ec *ExplorerController) GetGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	game, err := ec.Explorer.Game(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (ec *ExplorerController) GetMoves(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	moves, err := ec.Explorer.MovesInGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_id": id, "moves": moves})
}

func (ec *ExplorerController) SearchGames(c *gin.Context) {
	criteria := criteriaFromQuery(c)
	for _, key := range gameParams {
		if v, ok := c.GetQuery(key); ok && v != "" {
			criteria[key] = v
		}
	}
	page, err := ec.Explorer.SearchGames(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": page.Games, "total": page.Total, "page_size": repositories.PageSize})
}

func (ec *ExplorerController) SearchPositions(c *gin.Context) {
	criteria := criteriaFromQuery(c)
	pos := map[string]any{}
	for _, key := range positionParams {
		v, ok := c.GetQuery(key)
		if !ok {
			continue
		}
		if key == "en_passant" && (v == "" || v == "-") {
			pos[key] = nil
			continue
		}
		pos[key] = v
	}
	if len(pos) > 0 {
		criteria["position"] = pos
	}
	page, err := ec.Explorer.SearchPositions(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moves": page.Moves, "total": page.Total, "page_size": repositories.PageSize})
}

func (ec *ExplorerController) PopularMoves(c *gin.Context) {
	d, err := descriptorFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rows, err := ec.Explorer.PopularMoves(c.Request.Context(), d)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"position": d, "moves": rows})
}

func gameID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return 0, false
	}
	return uint(id), true
}

func criteriaFromQuery(c *gin.Context) filter.Criteria {
	criteria := filter.Criteria{}
	if offset, ok := c.GetQuery("offset"); ok && offset != "" {
		criteria["pagination"] = map[string]any{"offset": offset}
	}
	return criteria
}

// descriptorFromQuery accepts either a full FEN in fen, or the board in fen
// plus castling_availability, active_colour and en_passant.
func descriptorFromQuery(c *gin.Context) (position.Descriptor, error) {
	fen := strings.TrimSpace(c.Query("fen"))
	if fen == "" {
		return position.Descriptor{Fen: position.StartingBoard}, nil
	}
	if strings.Contains(fen, " ") {
		return position.ParseFEN(fen)
	}

	d := position.Descriptor{Fen: fen}
	if v := c.Query("castling_availability"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return d, errors.New("invalid castling_availability")
		}
		d.CastlingAvailability = n
	}
	if v := c.Query("active_colour"); v != "" {
		if err := d.ActiveColour.Scan(v); err != nil {
			return d, errors.New("invalid active_colour")
		}
	}
	if v := c.Query("en_passant"); v != "" && v != "-" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return d, errors.New("invalid en_passant")
		}
		d.EnPassant = &n
	}
	return d, nil
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case errors.Is(err, models.ErrUnknownResult), errors.Is(err, filter.ErrBadValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
