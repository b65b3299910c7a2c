package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"agencyhub/internal/ads_client"
	"agencyhub/internal/config"
	"agencyhub/internal/crypto"
	"agencyhub/internal/handler"
	"agencyhub/internal/mailer_client"
	"agencyhub/internal/middleware"
	"agencyhub/internal/modash_client"
	"agencyhub/internal/repository"
	"agencyhub/internal/scheduler_client"
	"agencyhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	cipher *crypto.TokenCipher
	logger *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, cipher *crypto.TokenCipher, logger *zap.Logger) (*Server, error) {
	s := &Server{
		router: gin.Default(),
		db:     db,
		cfg:    cfg,
		cipher: cipher,
		logger: logger,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupRoutes() error {
	// Repositories
	authRepo := repository.NewAuthRepository(s.db, s.logger)
	creatorRepo := repository.NewCreatorRepository(s.db, s.logger)
	reportCacheRepo := repository.NewReportCacheRepository(s.db, s.logger)
	searchLogRepo := repository.NewSearchLogRepository(s.db, s.logger)
	campaignRepo := repository.NewCampaignRepository(s.db, s.logger)
	taskRepo := repository.NewTaskRepository(s.db, s.logger)
	contractRepo := repository.NewContractRepository(s.db, s.logger)
	adConnRepo := repository.NewAdConnectionRepository(s.db, s.logger)

	// Upstream clients
	modashClient := modash_client.NewClient(s.cfg.Modash.BaseURL, s.cfg.Modash.Token, s.logger)
	schedulerClient := scheduler_client.NewClient(s.cfg.Scheduler.BaseURL, s.cfg.Scheduler.Token, s.logger)
	mailerClient := mailer_client.NewClient(s.cfg.Mailer.BaseURL, s.cfg.Mailer.APIKey, s.logger)

	metaClient, err := ads_client.NewClient(ads_client.ProviderMeta,
		s.cfg.Ads.Meta.BaseURL, s.cfg.Ads.Meta.ClientID, s.cfg.Ads.Meta.ClientSecret, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create meta ads client: %w", err)
	}
	tiktokClient, err := ads_client.NewClient(ads_client.ProviderTikTok,
		s.cfg.Ads.TikTok.BaseURL, s.cfg.Ads.TikTok.ClientID, s.cfg.Ads.TikTok.ClientSecret, s.logger)
	if err != nil {
		return fmt.Errorf("failed to create tiktok ads client: %w", err)
	}
	adsClients := map[string]*ads_client.Client{
		ads_client.ProviderMeta:   metaClient,
		ads_client.ProviderTikTok: tiktokClient,
	}

	// Services
	jwtSecret := []byte(s.cfg.Auth.JWTSecret)
	authService := service.NewAuthService(authRepo, jwtSecret, s.logger)
	discoveryService := service.NewDiscoveryService(modashClient, creatorRepo, searchLogRepo, s.logger)
	reportService := service.NewReportService(modashClient, reportCacheRepo, creatorRepo, s.logger)
	adsService := service.NewAdsService(adsClients, adConnRepo, s.cipher, s.logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, s.logger)
	discoveryHandler := handler.NewDiscoveryHandler(discoveryService, s.logger)
	reportHandler := handler.NewReportHandler(reportService, s.logger)
	campaignHandler := handler.NewCampaignHandler(campaignRepo, s.logger)
	taskHandler := handler.NewTaskHandler(taskRepo, s.logger)
	contractHandler := handler.NewContractHandler(contractRepo, s.logger)
	schedulerHandler := handler.NewSchedulerHandler(schedulerClient, s.logger)
	marketingHandler := handler.NewMarketingHandler(mailerClient, s.cfg.Mailer.ListID, s.logger)
	adsHandler := handler.NewAdsHandler(adsService, s.logger)
	creatorHandler := handler.NewCreatorHandler(creatorRepo, s.logger)
	dashboardHandler := handler.NewDashboardHandler(campaignRepo, taskRepo, contractRepo, creatorRepo, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Authentication routes
	authGroup := s.router.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated routes
	authRequired := s.router.Group("/api")
	authRequired.Use(middleware.AuthMiddleware(jwtSecret, s.logger))
	{
		authRequired.POST("/auth/logout", authHandler.Logout)
		authRequired.GET("/users", authHandler.ListUsers)

		authRequired.POST("/discovery/search", discoveryHandler.Search)
		authRequired.GET("/discovery/suggest", discoveryHandler.Suggest)
		authRequired.GET("/discovery/dictionary/:kind", discoveryHandler.Dictionary)
		authRequired.GET("/discovery/history", discoveryHandler.History)

		authRequired.GET("/creators", creatorHandler.List)
		authRequired.GET("/creators/:platform/:userId", creatorHandler.Get)
		authRequired.GET("/creators/:platform/:userId/report", reportHandler.GetReport)
		authRequired.DELETE("/creators/:platform/:userId/report", reportHandler.InvalidateCache)
		authRequired.GET("/creators/:platform/:userId/performance", reportHandler.GetPerformance)

		authRequired.POST("/campaigns", campaignHandler.Create)
		authRequired.GET("/campaigns", campaignHandler.List)
		authRequired.GET("/campaigns/:id", campaignHandler.Get)
		authRequired.PUT("/campaigns/:id", campaignHandler.Update)
		authRequired.DELETE("/campaigns/:id", campaignHandler.Delete)
		authRequired.GET("/campaigns/:id/stats", campaignHandler.Stats)
		authRequired.GET("/campaigns/:id/tasks", taskHandler.ListByCampaign)
		authRequired.GET("/campaigns/:id/contracts", contractHandler.ListByCampaign)

		authRequired.POST("/tasks", taskHandler.Create)
		authRequired.PUT("/tasks/:id", taskHandler.Update)
		authRequired.PATCH("/tasks/:id/stage", taskHandler.MoveStage)
		authRequired.DELETE("/tasks/:id", taskHandler.Delete)

		authRequired.POST("/contracts", contractHandler.Create)
		authRequired.GET("/contracts/:id", contractHandler.Get)
		authRequired.PATCH("/contracts/:id/status", contractHandler.UpdateStatus)
		authRequired.DELETE("/contracts/:id", contractHandler.Delete)

		authRequired.POST("/posts", schedulerHandler.CreatePost)
		authRequired.POST("/posts/schedule", schedulerHandler.SchedulePost)
		authRequired.DELETE("/posts/schedule/:id", schedulerHandler.DeleteScheduledPost)
		authRequired.GET("/social-accounts/:id/analytics", schedulerHandler.AccountAnalytics)

		authRequired.POST("/marketing/subscribers", marketingHandler.Subscribe)
		authRequired.POST("/marketing/tags", marketingHandler.Tag)

		authRequired.POST("/ads/:provider/connect", adsHandler.Connect)
		authRequired.DELETE("/ads/:provider", adsHandler.Disconnect)
		authRequired.GET("/ads/:provider/accounts", adsHandler.ListAdAccounts)
		authRequired.GET("/ads/:provider/accounts/:accountId/campaigns", adsHandler.ListCampaigns)

		authRequired.GET("/dashboard", dashboardHandler.Overview)
	}

	return nil
}

// Run serves until the listener fails or ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("Server starting", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
