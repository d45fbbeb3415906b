package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaintrace/chaintrace/config"
	"github.com/chaintrace/chaintrace/internal/adminapi"
	"github.com/chaintrace/chaintrace/internal/app"
	"github.com/chaintrace/chaintrace/internal/webserver"
	"go.uber.org/zap"
)

var (
	confFile = flag.String("c", "/etc/chaintrace.yml", "config file path")
	initDb   = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*confFile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	application.StartBackgroundJobs(ctx)

	webserver.Init(application)
	adminapi.InitRouter()

	if err := webserver.Instance().Start(ctx); err != nil {
		zap.L().Fatal("web server failed", zap.Error(err))
	}
}
