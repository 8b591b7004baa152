package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		dir = flag.String("dir", "db/migrations", "migrations directory")
		cmd = flag.String("cmd", "up", "up | down | version")
	)
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		fatal("DB_URL is required")
	}

	m, err := migrate.New("file://"+*dir, dbURL)
	if err != nil {
		fatal("open migrations: %v", err)
	}
	defer m.Close()

	switch *cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			fatal("read version: %v", verr)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return
	default:
		fatal("unknown command %q", *cmd)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fatal("run migrations: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
