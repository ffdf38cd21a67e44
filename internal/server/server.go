package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"

	"trendwise/internal/browser"
	"trendwise/internal/database"
	"trendwise/internal/repositories"
	"trendwise/internal/services"
)

type Server struct {
	port       int
	httpServer *http.Server
	db         database.Service

	browserSession *browser.Session
	schedulerStop  context.CancelFunc

	articleService  services.ArticleService
	commentService  services.CommentService
	userService     services.UserService
	authService     services.AuthService
	trendingService *services.TrendingService
	scheduler       *services.SchedulerService
}

func NewServer() *Server {
	portStr := os.Getenv("PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Warn().Str("port", portStr).Msg("Invalid PORT environment variable. Using default 8080.")
		port = 8080
	}

	db := database.New()

	articleRepo := repositories.NewArticleRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	userRepo := repositories.NewUserRepository(db)

	session := browser.NewSession()
	trendingService := services.NewTrendingService(services.NewBrowserTrendSource(session))

	s := &Server{
		port:            port,
		db:              db,
		browserSession:  session,
		articleService:  services.NewArticleService(articleRepo),
		commentService:  services.NewCommentService(commentRepo, userRepo),
		userService:     services.NewUserService(userRepo),
		authService:     services.NewAuthService(userRepo),
		trendingService: trendingService,
	}

	// Generation degrades gracefully when the model API key is absent: the
	// HTTP layer keeps serving, the scheduler simply never starts.
	llm, err := services.NewGoogleAIClient(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Generation client unavailable, automatic article generation disabled")
	} else {
		sanitizer := services.NewMediaSanitizer(services.NewUnsplashSearcher())
		content := services.NewContentService(llm, trendingService, sanitizer)
		s.scheduler = services.NewSchedulerService(trendingService, content, articleRepo, services.NewEmailService())
	}

	services.InitializeGoth()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	if s.scheduler != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.schedulerStop = cancel
		s.scheduler.Start(ctx)
	}

	log.Info().Int("port", s.port).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	if s.schedulerStop != nil {
		s.schedulerStop()
	}
	s.browserSession.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	if err := s.db.Close(); err != nil {
		log.Error().Err(err).Msg("Error disconnecting from database")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
