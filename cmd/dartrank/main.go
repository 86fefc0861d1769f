package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dartbrigade/dartrank/internal/app"
	"github.com/dartbrigade/dartrank/internal/auth"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/pkg/dartsbase"
)

var version = "dev"

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "dartrank.db", "SQLite database path")
	adminPw := flag.String("adminpw", "", "Admin password (auto-generated if not set)")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	siteURL := flag.String("site", dartsbase.DefaultBaseURL, "Results site base URL for tournament imports")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `DartRank - Darts League Ranking Server

Usage:
  dartrank [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "dartrank.db")
  -adminpw str   Admin password (auto-generated if not set)
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -site string   Results site base URL for imports
  -version       Show version and exit
  -help          Show this help message

Examples:
  dartrank                           # Run on port 8080 with dartrank.db
  dartrank -port 80 -db /data/league.db
  dartrank -adminpw secret123        # Use specific admin password

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("dartrank %s\n", version)
		os.Exit(0)
	}

	password := *adminPw
	if password == "" {
		password = auth.GeneratePassword()
	}
	adminAuth := auth.New(password)

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))
	client := dartsbase.NewHTTPClient(*siteURL, appLog)

	a, err := app.New(appLog, *dbPath, client, adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	appLog.Info("Admin password", "password", password)

	addr := fmt.Sprintf(":%d", *port)
	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}
