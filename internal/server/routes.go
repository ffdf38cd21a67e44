package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendwise/internal/handlers"
	"trendwise/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.RateLimit)
	r.Use(middlewares.PrometheusMiddleware)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	s.registerArticleRoutes(r)
	s.registerCommentRoutes(r)
	s.registerTrendRoutes(r)
	s.registerAuthRoutes(r)

	return r
}

func (s *Server) registerArticleRoutes(r *mux.Router) {
	ah := handlers.NewArticleHandler(s.articleService)

	r.HandleFunc("/api/articles", ah.GetArticles).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/articles/{slug}", ah.GetArticleBySlug).Methods("GET", "OPTIONS")
	r.Handle("/api/admin/articles", middlewares.AdminMiddleware(http.HandlerFunc(ah.CreateArticle))).Methods("POST", "OPTIONS")
	r.Handle("/api/admin/articles/{id}", middlewares.AdminMiddleware(http.HandlerFunc(ah.UpdateArticle))).Methods("PATCH", "PUT", "OPTIONS")
	r.Handle("/api/admin/articles/{id}", middlewares.AdminMiddleware(http.HandlerFunc(ah.DeleteArticle))).Methods("DELETE", "OPTIONS")
}

func (s *Server) registerCommentRoutes(r *mux.Router) {
	ch := handlers.NewCommentHandler(s.commentService)

	r.HandleFunc("/api/articles/{articleId}/comments", ch.GetArticleComments).Methods("GET", "OPTIONS")
	r.Handle("/api/articles/{articleId}/comments", middlewares.AuthMiddleware(http.HandlerFunc(ch.AddComment))).Methods("POST", "OPTIONS")
	r.Handle("/api/me/comments", middlewares.AuthMiddleware(http.HandlerFunc(ch.GetMyComments))).Methods("GET", "OPTIONS")
}

func (s *Server) registerTrendRoutes(r *mux.Router) {
	th := handlers.NewTrendHandler(s.trendingService, s.scheduler)

	r.HandleFunc("/api/trends", th.GetTrends).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/trends/status", th.GetTrendStatus).Methods("GET", "OPTIONS")
	r.Handle("/api/trends/refresh", middlewares.AdminMiddleware(http.HandlerFunc(th.RefreshTrends))).Methods("POST", "OPTIONS")
	r.Handle("/api/admin/generate", middlewares.AdminMiddleware(http.HandlerFunc(th.TriggerGeneration))).Methods("POST", "OPTIONS")
}

func (s *Server) registerAuthRoutes(r *mux.Router) {
	uh := handlers.NewUserHandler(s.userService)
	ah := handlers.NewAuthHandler(s.authService)

	r.HandleFunc("/api/auth/register", uh.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/auth/login", uh.Login).Methods("POST", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.GetMyProfile))).Methods("GET", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.UpdateMyProfile))).Methods("PATCH", "PUT", "OPTIONS")
	r.Handle("/api/me", middlewares.AuthMiddleware(http.HandlerFunc(uh.DeleteMyProfile))).Methods("DELETE", "OPTIONS")

	r.HandleFunc("/api/auth/success", ah.AuthSuccess).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/error", ah.AuthError).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}", ah.ProviderAuth).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/auth/{provider}/callback", ah.ProviderCallback).Methods("GET", "OPTIONS")
}
