package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/itchan-dev/forum/backend/internal/storage/blob"
	"github.com/itchan-dev/forum/backend/internal/storage/mem"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var configFolder string

// openStore loads the snapshot the server is configured with. The caller must
// defer store.Close(). Run it while the server is stopped, both would
// overwrite each other's snapshots otherwise.
func openStore(ctx context.Context) (*mem.Storage, error) {
	cfg, err := config.Load(configFolder)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	b, err := blob.NewFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot backend: %w", err)
	}
	store, err := mem.Open(ctx, b)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	return store, nil
}

var rootCmd = &cobra.Command{
	Use:          "forumctl",
	Short:        "Offline administration of the forum snapshot",
	SilenceUsage: true,
}

// users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return listUsers(cmd.OutOrStdout(), store)
	},
}

var usersAdminCmd = &cobra.Command{
	Use:   "admin USER_ID",
	Short: "Grant admin rights (revoke with --off)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userId, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		off, _ := cmd.Flags().GetBool("off")

		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := setAdmin(cmd.Context(), store, userId, !off); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d admin=%t\n", userId, !off)
		return nil
	},
}

// threads command
var threadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "Inspect threads",
}

var threadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List threads, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		return listThreads(cmd.OutOrStdout(), store)
	},
}

var threadsUnlockCmd = &cobra.Command{
	Use:   "unlock THREAD_ID",
	Short: "Unlock a thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threadId, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid thread id %q", args[0])
		}
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := unlockThread(cmd.Context(), store, threadId); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "thread %d unlocked\n", threadId)
		return nil
	},
}

// snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the snapshot",
}

var snapshotResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every user, thread and comment",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to reset without --yes")
		}
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "snapshot reset")
		return nil
	},
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Copy the snapshot into a json file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()

		dst, err := blob.NewFile(args[0])
		if err != nil {
			return err
		}
		if err := exportSnapshot(cmd.Context(), store, dst); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")

	// users subcommands
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAdminCmd)
	usersAdminCmd.Flags().Bool("off", false, "Revoke admin rights instead")

	// threads subcommands
	threadsCmd.AddCommand(threadsListCmd)
	threadsCmd.AddCommand(threadsUnlockCmd)

	// snapshot subcommands
	snapshotCmd.AddCommand(snapshotResetCmd)
	snapshotResetCmd.Flags().Bool("yes", false, "Confirm the reset")
	snapshotCmd.AddCommand(snapshotExportCmd)

	// root commands
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(threadsCmd)
	rootCmd.AddCommand(snapshotCmd)
}
