package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2beens/aresprotocol/internal/localstore"
	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/syncengine"
	"github.com/2beens/aresprotocol/pkg"
)

var (
	localDir        string
	localBackendURL string
	localOffline    bool
)

// localCmd drives the device side engine against a directory, handy for
// seeding states and replaying offline pushes.
var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Work with a device local state directory",
}

func newEngine() (*syncengine.Engine, error) {
	storage, err := localstore.NewFileStorage(localDir)
	if err != nil {
		return nil, err
	}
	return syncengine.New(storage, syncengine.Config{
		BackendURL: localBackendURL,
		Online:     func() bool { return !localOffline },
	}), nil
}

var localShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Decrypt and print the local state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		appState, err := engine.LoadState(cmd.Context())
		if err != nil {
			return err
		}
		if appState == nil {
			return errors.New("no readable local state")
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(appState)
	},
}

var localImportCmd = &cobra.Command{
	Use:   "import <state.json>",
	Short: "Store a plain JSON state locally and push it when online",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		appState := state.DefaultState()
		if err := json.Unmarshal(raw, appState); err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}
		appState.Normalize()

		engine, err := newEngine()
		if err != nil {
			return err
		}
		pushed, err := engine.SaveState(cmd.Context(), appState)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored, pushed: %t\n", pushed)
		return nil
	},
}

var localPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push the local state to the sync endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		appState, err := engine.LoadState(cmd.Context())
		if err != nil {
			return err
		}
		if appState == nil {
			return errors.New("no readable local state")
		}
		if !engine.PushToCloud(cmd.Context(), appState) {
			return errors.New("push not done, see logs")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "pushed")
		return nil
	},
}

var localStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a push is pending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		marker, err := engine.Pending()
		if err != nil {
			return err
		}
		if marker == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "in sync")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pending since %d\n", marker.Timestamp)
		return nil
	},
}

var localLoginCmd = &cobra.Command{
	Use:   "login <token>",
	Short: "Store the session token used for pushes",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		return engine.SetSessionToken(args[0])
	},
}

var localLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Wipe every local item, the vault key included",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		return engine.Logout()
	},
}

var localArchiveCmd = &cobra.Command{
	Use:   "archive <out.tar.gz>",
	Short: "Write the local storage directory, still encrypted, into a tar.gz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exists, err := pkg.PathExists(localDir, true)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("no local storage in %s", localDir)
		}

		out, err := os.OpenFile(args[0], os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
		if err != nil {
			return err
		}
		if err := pkg.Compress(localDir, out); err != nil {
			out.Close()
			return fmt.Errorf("archive %s: %w", localDir, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived %s to %s\n", localDir, args[0])
		return nil
	},
}

func init() {
	localCmd.PersistentFlags().StringVar(&localDir, "dir", "./.ares-local", "local storage directory")
	localCmd.PersistentFlags().StringVar(&localBackendURL, "backend", syncengine.DefaultBackendURL, "sync endpoint")
	localCmd.PersistentFlags().BoolVar(&localOffline, "offline", false, "act as if the device had no connectivity")
	localCmd.AddCommand(localShowCmd, localImportCmd, localPushCmd, localStatusCmd, localLoginCmd, localLogoutCmd, localArchiveCmd)
}
