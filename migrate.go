package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"family-calendar/internal/config"
	"family-calendar/internal/database"
	"family-calendar/internal/database/migrations"
	"family-calendar/internal/logger"

	"github.com/joho/godotenv"
)

// runMigrate handles "migrate [up|down|version]" against DB_PATH.
func runMigrate(args []string) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: family-calendar migrate [up|down|version]\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	action := "up"
	if fs.NArg() > 0 {
		action = fs.Arg(0)
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewWithWriter(os.Stderr)

	bunDB, err := database.Open(context.Background(), cfg.Database.Path)
	if err != nil {
		log.Error("DATABASE", err.Error())
		return 1
	}
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions(), log)
	defer runner.Close()

	switch action {
	case "up":
		err = runner.RunMigrations()
	case "down":
		err = runner.MigrateDown()
		if err == nil {
			log.Info("MIGRATE", "All migrations rolled back")
		}
	case "version":
		var version uint
		version, err = runner.Version()
		if err == nil {
			fmt.Println(version)
		}
	default:
		fs.Usage()
		return 2
	}

	if err != nil {
		log.Error("MIGRATE", err.Error())
		return 1
	}
	return 0
}
