package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openboard/service-jobboard-go/internal/auth"
	companyrepo "github.com/openboard/service-jobboard-go/internal/company/repo"
	jobrepo "github.com/openboard/service-jobboard-go/internal/job/repo"
	"github.com/openboard/service-jobboard-go/internal/router"
	userrepo "github.com/openboard/service-jobboard-go/internal/user/repo"
	"github.com/openboard/service-jobboard-go/pkg/database"
	"github.com/openboard/service-jobboard-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.Init(utilities.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-jobboard-go")

	// init db
	db, err := database.Connect(database.ConfigFromEnv())
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// ensure tables; companies first, jobs reference them
	setupCtx, setupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer setupCancel()
	if err := companyrepo.NewCompanyRepo(db).EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure companies table: %v", err)
	}
	if err := jobrepo.NewJobRepo(db).EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure jobs table: %v", err)
	}
	if err := userrepo.NewUserRepo(db).EnsureTable(setupCtx); err != nil {
		sugar.Fatalf("ensure users table: %v", err)
	}

	tokens := auth.NewTokenService(auth.ConfigFromEnv())

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8431"
	}

	// mount http server
	srv := &http.Server{
		Addr:    addr,
		Handler: router.RegisterRoutes(sugar, db, tokens),
	}

	// run server in background
	go func() {
		sugar.Infow("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// shutdown http server
	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
