// cmd/server/server.go
// Wires every engine, repository and transport together and owns their
// lifecycle.

package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"trackday-server/internal/admin"
	"trackday-server/internal/admission"
	"trackday-server/internal/config"
	"trackday-server/internal/counterstore"
	"trackday-server/internal/database"
	"trackday-server/internal/datastore"
	"trackday-server/internal/matchmaking"
	"trackday-server/internal/middleware"
	"trackday-server/internal/ranking"
	"trackday-server/internal/registry"
	"trackday-server/internal/rendezvous"
	"trackday-server/internal/repositories"
	"trackday-server/internal/tournament"
	"trackday-server/internal/websocket"

	"github.com/gin-gonic/gin"
)

// Server owns every long-running piece of the process this repository is
// responsible for: the admin HTTP server, the fleet-status hub and the
// admission controller's periodic task. The rendezvous wire protocol itself
// (framing, fragmentation, reliability, ticket transport) is an external
// collaborator; Rendezvous/Dispatcher are exposed so that transport can call
// into rendezvous.Services.HandleCall once it has authenticated a
// connection and decoded one request off the wire.
type Server struct {
	cfg    *config.Config
	logger *log.Logger
	db     *database.Connections

	admissionCtrl *admission.Controller
	registry      *registry.Registry
	hub           *websocket.Hub

	Rendezvous *rendezvous.Services
	Dispatcher *rendezvous.Dispatcher

	adminHTTP *http.Server
}

// noFriendsClient is a placeholder for the external friends service: every
// pair reports as not-friends until that collaborator is wired in
type noFriendsClient struct{}

func (noFriendsClient) IsFriend(ctx context.Context, ownerPID, candidatePID uint32) (bool, error) {
	return false, nil
}

// New builds the server and all its dependencies, but does not start
// listening
func New(ctx context.Context, cfg *config.Config, db *database.Connections, logger *log.Logger) (*Server, error) {
	repos := repositories.NewContainer(db.Mongo, cfg.Database.Mongo.Collections)

	if err := repos.Counters.EnsureSeeded(ctx); err != nil {
		return nil, err
	}
	if err := repos.Sessions.ClearAll(ctx); err != nil {
		return nil, err
	}

	reg := registry.New(logger)

	admissionCtrl, err := admission.New(ctx, repos.ServerStatus, reg, logger)
	if err != nil {
		return nil, err
	}

	counters := counterstore.New(db.Redis, logger)

	matchmakingEngine := matchmaking.NewEngine(repos.Gatherings, reg, noFriendsClient{}, logger)
	tournamentEngine := tournament.NewEngine(repos.Tournaments)
	rankingEngine := ranking.NewEngine(repos.RankingScore, repos.TournamentScore, repos.Tournaments, repos.CommonData, counters, logger)
	datastoreEngine := datastore.NewEngine(repos.Datastore, datastore.NewHTTPCDN(), cfg.External.ObjectStoreBucket, cfg.External.ObjectStoreCDNHost)

	services := &rendezvous.Services{
		Counters:    repos.Counters,
		Matchmaking: matchmakingEngine,
		Tournament:  tournamentEngine,
		Ranking:     rankingEngine,
		Datastore:   datastoreEngine,
	}
	dispatcher := services.NewDispatcher()

	hub := websocket.NewHub(logger)

	adminEngine := admin.NewEngine(admissionCtrl, reg, repos.Gatherings, repos.Tournaments, repos.CommonData)
	rateLimiter := middleware.RateLimiter(counters)
	adminRouter := admin.NewRouter(adminEngine, hub, cfg.Admin.APIKey, cfg.Admin.CORSOrigin, rateLimiter, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	adminHTTP := &http.Server{
		Addr:    cfg.Admin.Addr,
		Handler: adminRouter,
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		db:            db,
		admissionCtrl: admissionCtrl,
		registry:      reg,
		hub:           hub,
		Rendezvous:    services,
		Dispatcher:    dispatcher,
		adminHTTP:     adminHTTP,
	}, nil
}

// Start launches every background task and the admin listener this
// repository owns; it returns once they are all running, not once they
// exit. The rendezvous transport is driven by an external process that
// calls into s.Rendezvous/s.Dispatcher once it authenticates a connection.
func (s *Server) Start(ctx context.Context) {
	go s.admissionCtrl.Run(ctx)
	go s.hub.Run()

	go func() {
		s.logger.Printf("admin: listening on %s", s.cfg.Admin.Addr)
		if err := s.adminHTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("admin: server stopped: %v", err)
		}
	}()
}

// Shutdown stops the admin HTTP server gracefully; the admission controller
// stops when the caller cancels the context passed to Start. The fleet hub's
// Run loop takes no context and keeps running until the process exits.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.adminHTTP.Shutdown(shutdownCtx)
}
