package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applogger "github.com/pedroShimpa/chessdb-api/internal/logger"
	"github.com/pedroShimpa/chessdb-api/internal/models"
	"github.com/pedroShimpa/chessdb-api/internal/position"
)

const (
	afterE4   = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR"
	afterE4E5 = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR"
	afterE4C5 = "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR"
	afterD4   = "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR"
	afterD4D5 = "rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR"
	afterC4   = "rnbqkbnr/pppppppp/8/8/2P5/8/PP1PPPPP/RNBQKBNR"
	// Nf3 positions are not queried; any distinct board will do.
	afterNf3 = "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R"
)

const (
	epE3 = 20
	epE6 = 44
	epC6 = 42
	epD3 = 19
	epD6 = 43
	epC3 = 18
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Game{}, &models.Move{}))
	return db
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db := openTestDB(t)
	seed(t, db)
	return NewRepository(db, applogger.Nop())
}

func str(s string) *string { return &s }

func square(n int) *int { return &n }

func date(s string) *datatypes.Date {
	tm, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	d := datatypes.Date(tm)
	return &d
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	games := []models.Game{
		{ID: 1, Event: "World Championship", Site: "Moscow", Date: date("1985-10-15"), Round: "16", White: "Kasparov, G", Black: "Karpov, A", Result: models.ResultWhiteWon, WhiteElo: 2800, BlackElo: 2750, ECO: "B44"},
		{ID: 2, Event: "World Championship", Site: "Moscow", Date: date("1985-10-20"), Round: "17", White: "Karpov, A", Black: "Kasparov, G", Result: models.ResultDraw, WhiteElo: 2750, BlackElo: 2800, ECO: "D55"},
		{ID: 3, Event: "PCA World Championship", Site: "London", Date: date("1993-09-07"), Round: "1", White: "Kasparov, G", Black: "Short, N", Result: models.ResultWhiteWon, WhiteElo: 2805, BlackElo: 2655, ECO: "C84"},
		{ID: 4, Event: "PCA World Championship", Site: "New York", Date: date("1995-09-11"), Round: "10", White: "Anand, V", Black: "Kasparov, G", Result: models.ResultBlackWon, WhiteElo: 2725, BlackElo: 2795, ECO: "C80"},
		{ID: 5, Event: "World Championship", Site: "Chennai", Date: date("2013-11-09"), Round: "1", White: "Carlsen, M", Black: "Anand, V", Result: models.ResultDraw, WhiteElo: 2870, BlackElo: 2775, ECO: "A29"},
		{ID: 6, Event: "Online Blitz", Site: "Internet", Date: date("2020-05-01"), Round: "?", White: "Nakamura, H", Black: "Carlsen, M", Result: models.Result(3), WhiteElo: 2780, BlackElo: 2830, ECO: "C20"},
	}
	require.NoError(t, db.Create(&games).Error)

	moves := []models.Move{
		// game 1, inserted out of order
		{GameID: 1, FenPosition: afterNf3, San: "Nf3", ActiveColour: models.Black, FullmoveNumber: 2, CastlingAvailability: 15},
		{GameID: 1, FenPosition: afterE4, San: "e4", NextSan: str("c5"), ActiveColour: models.Black, FullmoveNumber: 1, CastlingAvailability: 15, EnPassant: square(epE3)},
		{GameID: 1, FenPosition: afterE4C5, San: "c5", NextSan: str("Nf3"), ActiveColour: models.White, FullmoveNumber: 2, CastlingAvailability: 15, EnPassant: square(epC6)},
		// game 2
		{GameID: 2, FenPosition: afterD4, San: "d4", NextSan: str("d5"), ActiveColour: models.Black, FullmoveNumber: 1, CastlingAvailability: 15, EnPassant: square(epD3)},
		{GameID: 2, FenPosition: afterD4D5, San: "d5", ActiveColour: models.White, FullmoveNumber: 2, CastlingAvailability: 15, EnPassant: square(epD6)},
		// game 3
		{GameID: 3, FenPosition: afterE4, San: "e4", NextSan: str("e5"), ActiveColour: models.Black, FullmoveNumber: 1, CastlingAvailability: 15, EnPassant: square(epE3)},
		{GameID: 3, FenPosition: afterE4E5, San: "e5", NextSan: str("Nf3"), ActiveColour: models.White, FullmoveNumber: 2, CastlingAvailability: 15, EnPassant: square(epE6)},
		{GameID: 3, FenPosition: afterNf3, San: "Nf3", ActiveColour: models.Black, FullmoveNumber: 2, CastlingAvailability: 15},
		// game 4
		{GameID: 4, FenPosition: afterE4, San: "e4", NextSan: str("e5"), ActiveColour: models.Black, FullmoveNumber: 1, CastlingAvailability: 15, EnPassant: square(epE3)},
		{GameID: 4, FenPosition: afterE4E5, San: "e5", ActiveColour: models.White, FullmoveNumber: 2, CastlingAvailability: 15, EnPassant: square(epE6)},
		// game 5
		{GameID: 5, FenPosition: afterC4, San: "c4", ActiveColour: models.Black, FullmoveNumber: 1, CastlingAvailability: 15, EnPassant: square(epC3)},
		// game 6 has an unfinished result code
		{GameID: 6, FenPosition: afterE4, San: "e4", ActiveColour: models.Black, FullmoveNumber: 1, CastlingAvailability: 15, EnPassant: square(epE3)},
	}
	require.NoError(t, db.Create(&moves).Error)
}

var startDescriptor = position.Descriptor{Fen: position.StartingBoard, CastlingAvailability: 15, ActiveColour: models.White}
