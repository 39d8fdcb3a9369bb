// Package main runs the ARES training context MCP server over stdio for one user.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/aresprotocol/internal/config"
	"github.com/2beens/aresprotocol/internal/db"
	"github.com/2beens/aresprotocol/internal/gymstats/catalog"
	"github.com/2beens/aresprotocol/internal/gymstats/exercises"
	aresmcp "github.com/2beens/aresprotocol/internal/gymstats/mcp"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/vault"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	userID := flag.String("user", "", "id of the user whose training context is served")
	flag.Parse()

	if *userID == "" {
		log.Fatal("user id not set, use -user")
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	masterKey, err := vault.DecodeKey(os.Getenv("ARES_VAULT_MASTER_KEY"))
	if err != nil {
		log.Fatalf("vault master key: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("ARES_DB_USER"),
		DBPassword: os.Getenv("ARES_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	keyStore, err := vault.NewWrappedKeyStore(masterKey, vault.NewPgKeyStore(dbPool))
	if err != nil {
		log.Fatalf("key store: %v", err)
	}
	states := state.NewService(state.NewRepo(dbPool), vault.New(keyStore))

	exerciseCatalog, err := catalog.NewDefault()
	if err != nil {
		log.Fatalf("exercise catalog: %v", err)
	}

	setsRepo := exercises.NewRepo(dbPool)
	svc := aresmcp.NewContextService(
		*userID,
		aresmcp.NewPoolSchemaRepo(dbPool),
		setsRepo,
		exercises.NewAnalyzer(setsRepo),
		exerciseCatalog,
		states,
	)

	if err := aresmcp.NewServer(svc).Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
