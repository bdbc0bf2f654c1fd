package main

import (
	"time"

	"github.com/hanuiwon/clinic-api/config"
	"github.com/hanuiwon/clinic-api/routes"
	"github.com/hanuiwon/clinic-api/sessions"
	"github.com/hanuiwon/clinic-api/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase()
	utils.Sugar.Info("connected to mongodb")

	store := sessions.NewRedisStore(utils.GetRedis(), time.Duration(cfg.SessionTTLHours)*time.Hour)

	r := routes.SetupRouter(db, store)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
