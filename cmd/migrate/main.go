package main

import (
	"flag"
	"os"

	config "github.com/Baru2006/EasyRecharge-MM/configs"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
)

func main() {
	check := flag.Bool("check", false, "only report missing tables, exit 1 when any are missing")
	flag.Parse()

	logger.Setup()
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	db, err := database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  env.DBSSLMode,
		Driver:   database.DriverEnum(env.DBDriver),
		Verbose:  env.AppEnv.Verbose(),
	})
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if *check {
		pending := db.PendingTables()
		if len(pending) == 0 {
			logger.Info.Println("No pending tables")
			return
		}
		logger.Warning.Printf("Pending tables: %v", pending)
		_ = db.Close()
		os.Exit(1)
	}

	if err := db.RunMigrations(); err != nil {
		logger.Error.Println("Error running migrations", err)
		_ = db.Close()
		os.Exit(1)
	}
}
