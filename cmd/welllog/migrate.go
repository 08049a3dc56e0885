package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/banshee-data/welllog/internal/db"
)

func handleMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dbPath := fs.String("db", "", "Database path (default from config)")
	fs.Usage = printMigrateHelp
	fs.Parse(args)
	requireArgs(fs, 1, "a migrate action")

	path := *dbPath
	if path == "" {
		path = loadToolConfig().GetDBPath()
	}

	// Open without migrating: the schema is what this command manages.
	database, err := db.OpenDB(path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	migrations := db.MigrationsFS()
	switch action := fs.Arg(0); action {
	case "up":
		log.Printf("Running migrations...")
		if err := database.MigrateUp(migrations); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		log.Println("✓ All migrations applied successfully")
		printMigrateVersion(database)
	case "down":
		log.Printf("Rolling back one migration...")
		if err := database.MigrateDown(migrations); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
		log.Println("✓ Migration rolled back successfully")
		printMigrateVersion(database)
	case "status":
		version, dirty, err := database.MigrateVersion(migrations)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		latest, err := db.LatestMigrationVersion(migrations)
		if err != nil {
			log.Fatalf("Failed to read migrations: %v", err)
		}
		fmt.Println("=== Migration Status ===")
		fmt.Printf("Current version: %d\n", version)
		fmt.Printf("Latest version:  %d\n", latest)
		fmt.Printf("Dirty: %v\n", dirty)
		if dirty {
			fmt.Println("\n⚠️  WARNING: Database is in a dirty state!")
			fmt.Println("A migration failed mid-execution. Inspect the database, then run:")
			fmt.Println("  welllog migrate force <version>")
		}
	case "version":
		target := parseVersionArg(fs.Arg(1))
		log.Printf("Migrating to version %d...", target)
		if err := database.MigrateTo(migrations, uint(target)); err != nil {
			log.Fatalf("Migration to version %d failed: %v", target, err)
		}
		log.Printf("✓ Migrated to version %d successfully", target)
	case "force":
		target := parseVersionArg(fs.Arg(1))
		if err := database.MigrateForce(migrations, target); err != nil {
			log.Fatalf("Force migration failed: %v", err)
		}
		log.Printf("✓ Migration version forced to %d", target)
	case "help":
		printMigrateHelp()
	default:
		fmt.Fprintf(os.Stderr, "Unknown migrate action: %s\n\n", action)
		printMigrateHelp()
		os.Exit(1)
	}
}

func parseVersionArg(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		log.Fatalf("Invalid version number: %q", s)
	}
	return v
}

func printMigrateVersion(database *db.DB) {
	version, dirty, _ := database.MigrateVersion(db.MigrationsFS())
	log.Printf("Current version: %d (dirty: %v)", version, dirty)
}

func printMigrateHelp() {
	fmt.Println(`Database Migration Commands

Usage: welllog migrate [-db path] <action> [version]

Actions:
  up              Apply all pending migrations
  down            Roll back one migration
  status          Show current and latest migration versions
  version <N>     Migrate up or down to version N
  force <N>       Set the recorded version to N (recovery only)
  help            Show this help message`)
}
