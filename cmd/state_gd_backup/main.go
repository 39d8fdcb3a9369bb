package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aresprotocol/internal/backup"
	"github.com/2beens/aresprotocol/internal/config"
	"github.com/2beens/aresprotocol/internal/db"
	"github.com/2beens/aresprotocol/internal/logging"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/metrics"
)

// encrypted state blobs google drive backup cmd

func main() {
	env := flag.String("env", "production", "environment [prod | production | dev | development | ddev | dockerdev ]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	credentialsFile := flag.String("gd-creds", "./ares-backup-drive-credentials.json", "google drive service account credentials json")
	shareWith := flag.String("share-with", "", "email that gets reader access to the uploaded backups")
	logsPath := flag.String("logs-path", "/var/log/ares-protocol/state-backup.log", "logs file path (empty for stdout)")
	reinit := flag.Bool("reinit", false, "drop all backups and upload every state again")
	timeout := flag.Duration("timeout", 30*time.Minute, "max duration of the whole run")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: *logsPath,
		LogToStdout: *logsPath == "",
		LogLevel:    "debug",
		Environment: *env,
	})

	log.Println("starting state backup ...")

	if *credentialsFile == "" {
		log.Fatalln("google drive credentials json not specified")
	}
	if *reinit {
		log.Println("!! attention: will reinitialize all again...")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	credentials, err := os.ReadFile(*credentialsFile)
	if err != nil {
		log.Fatalf("unable to read credentials file: %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("ARES_DB_USER"),
		DBPassword: os.Getenv("ARES_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	driveStore, err := backup.NewDriveStore(ctx, credentials)
	if err != nil {
		log.Fatalf("google drive client: %s", err)
	}

	metricsManager := metrics.NewManager("ares", "state_backup", prometheus.NewRegistry())
	s, err := backup.NewService(ctx, driveStore, state.NewRepo(dbPool), metricsManager, *shareWith)
	if err != nil {
		log.Fatalf("failed to create state backup service: %s", err)
	}

	baseTime := time.Now()

	if *reinit {
		n, err := s.Reinit(ctx, baseTime)
		if err != nil {
			log.Fatalf("reinit failed: %s", err)
		}
		log.Printf("reinit done, %d states saved", n)
		return
	}

	n, err := s.DoBackup(ctx, baseTime)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("backup done, %d states saved", n)
}
