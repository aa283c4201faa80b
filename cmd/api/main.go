package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"noticeboard/cmd/app"
	"noticeboard/internal/config"
	handlers "noticeboard/internal/handler"
	"noticeboard/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	a, err := app.New(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	if err := a.Sweep.Start(cfg.HashtagSweepSchedule); err != nil {
		a.Log.WithError(err).Fatal("hashtag sweep")
	}

	h := handlers.NewHandlers(a.Services, cfg, a.Log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           newRouter(a, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := app.Serve(srv, a.Log); err != nil {
		a.Log.WithError(err).Error("api server")
	}
}

func newRouter(a *app.App, h *handlers.Handlers) http.Handler {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(middleware.MetricsMiddleware(a.Metrics)))

	auth := middleware.AuthMiddleware(a.Services.Auth)
	protected := func(fn http.HandlerFunc) http.Handler { return auth(fn) }

	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.HealthHandler(a.DB)).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", h.RefreshToken).Methods(http.MethodPost)
	r.Handle("/api/me", protected(h.Me)).Methods(http.MethodGet)

	r.HandleFunc("/api/articles", h.GetArticles).Methods(http.MethodGet)
	r.Handle("/api/articles", protected(h.CreateArticle)).Methods(http.MethodPost)
	r.HandleFunc("/api/articles/search-hashtag", h.SearchArticlesByHashtag).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/count", h.GetArticleCount).Methods(http.MethodGet)
	r.HandleFunc("/api/articles/{articleId}", h.GetArticle).Methods(http.MethodGet)
	r.Handle("/api/articles/{articleId}", protected(h.UpdateArticle)).Methods(http.MethodPut)
	r.Handle("/api/articles/{articleId}", protected(h.DeleteArticle)).Methods(http.MethodDelete)

	r.Handle("/api/articles/{articleId}/comments", protected(h.CreateComment)).Methods(http.MethodPost)
	r.Handle("/api/comments/{commentId}", protected(h.DeleteComment)).Methods(http.MethodDelete)

	r.Handle("/api/articles/{articleId}/images", protected(h.AddImage)).Methods(http.MethodPost)
	r.Handle("/api/articles/{articleId}/images/{imageId}", protected(h.DeleteImage)).Methods(http.MethodDelete)

	r.HandleFunc("/api/hashtags", h.GetHashtags).Methods(http.MethodGet)

	return middleware.Chain(r,
		middleware.RecoverMiddleware(a.Log),
		middleware.RequestIDMiddleware(a.Log),
		middleware.LoggingMiddleware(a.Log),
		middleware.CORSMiddleware,
	)
}
