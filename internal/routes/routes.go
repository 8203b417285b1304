package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pedroShimpa/chessdb-api/internal/controllers"
	"github.com/pedroShimpa/chessdb-api/internal/logger"
	"github.com/pedroShimpa/chessdb-api/internal/middleware"
)

func RegisterRoutes(r *gin.Engine, explorer controllers.Explorer, log *logger.Logger, allowedOrigins []string) {
	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodOptions}

	r.Use(middleware.RequestLogger(log), cors.New(corsConfig))

	explorerController := &controllers.ExplorerController{Explorer: explorer}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/games", explorerController.SearchGames)
		api.GET("/games/:id", explorerController.GetGame)
		api.GET("/games/:id/moves", explorerController.GetMoves)
		api.GET("/positions", explorerController.SearchPositions)
		api.GET("/positions/popular", explorerController.PopularMoves)
	}
}
