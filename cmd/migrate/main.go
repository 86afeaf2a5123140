// migrate runs DB migrations from embedded SQL.
package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/config"
	"github.com/safinirasol/WellMind-IBM/internal/db/migrate"
	"github.com/safinirasol/WellMind-IBM/internal/logging"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	version := flag.Bool("version", false, "Print the current schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	if *version {
		v, dirty, err := migrate.Version(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("migrate version", zap.Error(err))
		}
		log.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return
	}

	if err := migrate.Run(cfg.DatabaseURL, *direction); err != nil {
		log.Fatal("migrate", zap.String("direction", *direction), zap.Error(err))
	}
	log.Info("migrations applied", zap.String("direction", *direction))
}
