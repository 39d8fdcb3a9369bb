package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/2beens/aresprotocol/internal/config"
	"github.com/2beens/aresprotocol/internal/db"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/vault"
)

var (
	usersEnv        string
	usersConfigPath string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect the stored user states",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the users with a stored state, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		repo, closeDB, err := openStateRepo(cmd.Context())
		if err != nil {
			return err
		}
		defer closeDB()

		ids, err := repo.ListUserIDs(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var usersResetCmd = &cobra.Command{
	Use:   "reset-due",
	Short: "Run the daily reset for every user past their local midnight",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		masterKey, err := vault.DecodeKey(os.Getenv("ARES_VAULT_MASTER_KEY"))
		if err != nil {
			return fmt.Errorf("ARES_VAULT_MASTER_KEY: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
		defer cancel()

		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		keyStore, err := vault.NewWrappedKeyStore(masterKey, vault.NewPgKeyStore(pool))
		if err != nil {
			return err
		}
		service := state.NewService(state.NewRepo(pool), vault.New(keyStore))

		reset, err := service.ResetDue(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d states reset\n", reset)
		return nil
	},
}

func init() {
	usersCmd.PersistentFlags().StringVar(&usersEnv, "env", "development", "config environment")
	usersCmd.PersistentFlags().StringVar(&usersConfigPath, "config", "./config.toml", "path for the TOML config file")
	usersCmd.AddCommand(usersListCmd, usersResetCmd)
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load(usersEnv, usersConfigPath)
	if err != nil {
		return nil, err
	}
	return db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("ARES_DB_USER"),
		DBPassword: os.Getenv("ARES_DB_PASS"),
	})
}

func openStateRepo(ctx context.Context) (*state.Repo, func(), error) {
	pool, err := openPool(ctx)
	if err != nil {
		return nil, nil, err
	}
	return state.NewRepo(pool), pool.Close, nil
}
