// internal/admin/router.go
// gin HTTP surface for the admin engine, gated by APIKeyAuth, plus the
// fleet-status websocket upgrade.

package admin

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trackday-server/internal/middleware"
	"trackday-server/internal/utils"
	"trackday-server/internal/websocket"
)

// NewRouter builds the admin gin engine: logging, request-id, rate-limit
// and x-api-key auth middleware, then the operation routes
func NewRouter(engine *Engine, hub *websocket.Hub, apiKey, corsOrigin string, rateLimiter gin.HandlerFunc, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "x-api-key"},
		AllowCredentials: true,
	}))
	r.Use(rateLimiter)
	r.Use(middleware.APIKeyAuth(apiKey))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, engine.GetServerStatus())
	})

	r.POST("/maintenance/start", func(c *gin.Context) {
		var body struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		engine.StartMaintenance(body.Start, body.End)
		hub.Broadcast("maintenance_scheduled", body)
		c.JSON(http.StatusOK, engine.GetServerStatus())
	})

	r.POST("/maintenance/end", func(c *gin.Context) {
		engine.EndMaintenance()
		hub.Broadcast("maintenance_ended", nil)
		c.JSON(http.StatusOK, engine.GetServerStatus())
	})

	r.POST("/whitelist/toggle", func(c *gin.Context) {
		enabled := engine.ToggleWhitelist()
		hub.Broadcast("whitelist_toggled", gin.H{"enabled": enabled})
		c.JSON(http.StatusOK, gin.H{"enabled": enabled})
	})

	r.GET("/whitelist", func(c *gin.Context) {
		c.JSON(http.StatusOK, engine.GetWhitelist())
	})

	r.POST("/whitelist/:pid", func(c *gin.Context) {
		pid, err := parsePID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		engine.AddWhitelistUser(pid)
		c.JSON(http.StatusOK, gin.H{"pid": pid})
	})

	r.DELETE("/whitelist/:pid", func(c *gin.Context) {
		pid, err := parsePID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		engine.DelWhitelistUser(pid)
		c.JSON(http.StatusOK, gin.H{"pid": pid})
	})

	r.GET("/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, engine.GetAllUsers())
	})

	r.POST("/users/:pid/kick", func(c *gin.Context) {
		pid, err := parsePID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kicked := engine.KickUser(pid)
		hub.Broadcast("user_kicked", gin.H{"pid": pid})
		c.JSON(http.StatusOK, gin.H{"pid": pid, "kicked": kicked})
	})

	r.POST("/users/kick-all", func(c *gin.Context) {
		count := engine.KickAllUsers()
		hub.Broadcast("all_users_kicked", gin.H{"count": count})
		c.JSON(http.StatusOK, gin.H{"kicked": count})
	})

	r.GET("/gatherings", func(c *gin.Context) {
		offset, limit, err := paginationParams(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		views, err := engine.GetAllGatherings(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, views)
	})

	r.GET("/tournaments", func(c *gin.Context) {
		offset, limit, err := paginationParams(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tournaments, err := engine.GetAllTournaments(c.Request.Context(), offset, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tournaments)
	})

	r.GET("/unlocks/:pid", func(c *gin.Context) {
		pid, err := parsePID(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		unlocks, err := engine.GetUnlocks(c.Request.Context(), pid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, unlocks)
	})

	r.GET("/fleet", websocket.HandleConnection(hub))

	return r
}

func parsePID(c *gin.Context) (uint32, error) {
	pid64, err := strconv.ParseUint(c.Param("pid"), 10, 32)
	if err != nil {
		return 0, err
	}
	pid := uint32(pid64)
	return pid, utils.ValidatePID(pid)
}

func paginationParams(c *gin.Context) (offset, limit int64, err error) {
	o, l, verr := utils.ValidateRange(atoiOrZero(c.Query("offset")), atoiOrZero(c.Query("limit")), 100)
	if verr != nil {
		return 0, 0, verr
	}
	return int64(o), int64(l), nil
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
