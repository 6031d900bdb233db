package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/itzsam-lol/com-app/internal/pkg/config"
	"github.com/itzsam-lol/com-app/internal/pkg/env"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
)

func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		logging.Log.WithError(err).Fatal("failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.IsDev())
	log := logging.For("migrate")

	dbURL, err := databaseURL(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("invalid database configuration")
	}
	log.Infof("connecting to database: %s@%s:%s/%s (%s)",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, cfg.Database.Driver)

	m, err := migrate.New("file://migrations/"+cfg.Database.Driver, dbURL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize migrations")
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Errorf("failed to close migration resources: %v, %v", sourceErr, dbErr)
		}
	}()

	switch command {
	case "up":
		// apply all pending migrations
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.WithError(err).Fatal("failed to run migrations")
		} else if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no change: database is up to date")
		} else {
			log.Info("migrations applied")
		}

	case "down":
		// roll back the last migration
		if err := m.Steps(-1); err != nil {
			log.WithError(err).Fatal("failed to roll back the last migration")
		}
		log.Info("last migration rolled back")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal("please provide a version number")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.WithError(err).Fatal("invalid version number")
		}
		if err := m.Migrate(uint(version)); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.WithError(err).Fatalf("failed to migrate to version %d", version)
		} else if errors.Is(err, migrate.ErrNoChange) {
			log.Infof("no change: database already at version %d", version)
		} else {
			log.Infof("migrated to version %d", version)
		}

	case "status":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Info("no migrations have been applied yet")
				return
			}
			log.WithError(err).Fatal("failed to read migration version")
		}
		dirtyStatus := ""
		if dirty {
			dirtyStatus = " (dirty)"
		}
		log.Infof("current migration version: %d%s", version, dirtyStatus)

	default:
		printUsage()
		os.Exit(1)
	}
}

func databaseURL(db config.DatabaseConfig) (string, error) {
	switch db.Driver {
	case "mysql":
		return fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true&parseTime=true",
			db.User, db.Password, db.Host, db.Port, db.Name), nil
	case "postgres":
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(db.User, db.Password),
			Host:     db.Host + ":" + db.Port,
			Path:     "/" + db.Name,
			RawQuery: "sslmode=" + url.QueryEscape(db.SSLMode),
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", db.Driver)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/migrate/main.go [command]")
	fmt.Println("Available commands:")
	fmt.Println("  up     - apply all pending migrations")
	fmt.Println("  down   - roll back the last migration")
	fmt.Println("  goto N - migrate to version N")
	fmt.Println("  status - show the current migration version")
}
