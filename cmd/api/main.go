package main

import (
	"flag"
	"fmt"
	"os"

	"transformer-load/internal/api"
	"transformer-load/internal/config"
	"transformer-load/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("error loading .env file")
	}

	cfgPath := flag.String("config", "", "Optional path to YAML config (server and logging sections)")
	flag.Parse()

	cfg := config.FromEnv()
	if *cfgPath != "" {
		loaded, err := config.LoadUnchecked(*cfgPath)
		if err != nil {
			log.WithError(err).Error("failed to load configuration")
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("failed to configure logger")
		os.Exit(1)
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg.Server)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithFields(logger.Fields{
		"addr": addr,
		"env":  cfg.Server.Env,
	}).Info("starting API server")
	if err := router.Run(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
