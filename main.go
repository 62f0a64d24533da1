package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Onyxxx17/Skribble-Clone/game"
	"github.com/Onyxxx17/Skribble-Clone/shared/configs"
	"github.com/Onyxxx17/Skribble-Clone/shared/logger"
	"github.com/Onyxxx17/Skribble-Clone/transport"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies([]string{"127.0.0.1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		log.Fatal().Err(err).Msg("invalid trusted proxy list")
	}
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	releaseMode := configs.Envs.GIN_MODE == gin.ReleaseMode
	logger.Setup(releaseMode)
	if releaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	allowedOrigins := strings.Split(configs.Envs.ALLOWED_ORIGINS, ",")

	hub := transport.NewHub()
	coordinator := game.NewCoordinator(
		game.NewDirectory(),
		game.NewWordBank(),
		game.NewWallClock(),
		game.NewWallScheduler(),
		hub,
	)
	hub.SetCoordinator(coordinator)

	r := CreateServer(allowedOrigins)
	transport.NewHandler(hub, allowedOrigins).RegisterRoutes(r)

	server := &http.Server{
		Addr:    configs.Envs.LISTEN_ADDR,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server started")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
