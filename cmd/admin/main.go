package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"noticeboard/cmd/app"
	"noticeboard/internal/admin"
	"noticeboard/internal/config"
	"noticeboard/internal/logger"
	"noticeboard/internal/middleware"
	"noticeboard/internal/service"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, store, err := app.Connect(ctx, cfg, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("startup failed")
	}
	defer db.CloseDB()

	accounts := service.NewUserAccountService(store.Repos().UserAccount, log)

	r := mux.NewRouter()
	admin.NewHandler(accounts, log).Register(r)
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/admin/members", http.StatusFound)
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.AdminPort),
		Handler: middleware.Chain(r,
			middleware.RecoverMiddleware(log),
			middleware.RequestIDMiddleware(log),
			middleware.LoggingMiddleware(log),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := app.Serve(srv, log); err != nil {
		log.WithError(err).Error("admin server")
	}
}
