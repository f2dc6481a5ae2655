// cmd/tools/dbmigrate/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appdb "github.com/inteligenciarte/luxurystudio/internal/db"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "Path to the leads SQLite database")
		command = flag.String("command", "", "Command to run (up, down, version, leads)")
		limit   = flag.Int("limit", 20, "Number of leads listed by the leads command")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *dbPath == "" || *command == "" {
		fmt.Fprintln(os.Stderr, "The -db and -command flags are required:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	database, err := appdb.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("Failed to open database")
	}
	defer database.Close()

	if *command == "leads" {
		if err := printLeads(database, *limit); err != nil {
			log.Fatal().Err(err).Msg("Failed to list leads")
		}
		return
	}

	m, err := appdb.NewMigrator(database.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrate instance")
	}

	// Execute command
	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
		log.Info().Msg("Successfully ran migrations up")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Failed to rollback migrations")
		}
		log.Info().Msg("Successfully ran migrations down")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current version")

	default:
		log.Fatal().Str("command", *command).Msg("Unknown command")
	}
}

func printLeads(database *appdb.DB, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	leads, err := database.ListRecentLeads(ctx, limit)
	if err != nil {
		return err
	}
	for _, lead := range leads {
		client := "novo"
		if lead.IsClient {
			client = "cliente"
		}
		fmt.Printf("%s\t%s (%s)\t%s\t%s\n",
			lead.CreatedAt.Local().Format("2006-01-02 15:04"),
			lead.Name,
			client,
			strings.Join(lead.Procedures, ", "),
			lead.TimePreference,
		)
	}
	return nil
}
