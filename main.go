package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ccfrost/climbsync/internal/config"
	"github.com/ccfrost/climbsync/internal/jobs"
	"github.com/ccfrost/climbsync/internal/lib"
	"github.com/ccfrost/climbsync/internal/metrics"
	"github.com/ccfrost/climbsync/internal/settings"
	"github.com/ccfrost/climbsync/internal/watch"
)

const climbsync = "climbsync"

func exitOnErr(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func main() {
	var configPath string
	var quiet bool
	var cfg config.ClimbsyncConfig

	rootCmd := cobra.Command{
		Use:   climbsync,
		Short: "Upload new climbing videos from a folder",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			if quiet {
				lib.SetProgressWriter(io.Discard)
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Do not show progress bars")

	// signalContext is cancelled on interrupt, so that a run stops at its next suspension point.
	signalContext := func() (context.Context, context.CancelFunc) {
		return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	}
	openStore := func(ctx context.Context) *settings.Store {
		store, err := settings.Open(ctx, cfg.SettingsDB)
		exitOnErr(err)
		return store
	}

	// --- folder ---

	folderCmd := cobra.Command{
		Use:   "folder",
		Short: "Show or choose the folder to upload videos from",
	}
	folderSetCmd := cobra.Command{
		Use:   "set <dir>",
		Short: "Choose the folder to upload videos from",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			dir, err := filepath.Abs(args[0])
			exitOnErr(err)
			_, err = lib.LocalDirectory{}.List(ctx, dir)
			exitOnErr(err)

			store := openStore(ctx)
			defer store.Close()
			exitOnErr(store.SetFolder(ctx, dir))
			fmt.Printf("Folder set to %s\n", dir)
		},
	}
	folderShowCmd := cobra.Command{
		Use:   "show",
		Short: "Print the folder videos are uploaded from",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			store := openStore(ctx)
			defer store.Close()
			folder, err := store.Folder(ctx)
			exitOnErr(err)
			if folder == "" {
				fmt.Println("No folder set")
				return
			}
			fmt.Println(folder)
		},
	}
	folderCmd.AddCommand(&folderSetCmd, &folderShowCmd)
	rootCmd.AddCommand(&folderCmd)

	// --- account ---

	accountCmd := cobra.Command{
		Use:   "account",
		Short: "Connect or disconnect the account videos are uploaded to",
	}
	accountConnectCmd := cobra.Command{
		Use:   "connect <account>",
		Short: "Authorize uploads for an account in the browser",
		Long: `Authorize uploads for an account in the browser.
The account name is how climbsync refers to the grant, e.g. your email address.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()
			account := args[0]

			exitOnErr(newTokenStore(cfg).Connect(ctx, account))
			store := openStore(ctx)
			defer store.Close()
			exitOnErr(store.SetAccount(ctx, account))
		},
	}
	accountDisconnectCmd := cobra.Command{
		Use:   "disconnect",
		Short: "Forget the connected account and its token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			store := openStore(ctx)
			defer store.Close()
			account, err := store.Account(ctx)
			exitOnErr(err)
			if account == "" {
				fmt.Println("No account connected")
				return
			}
			exitOnErr(newTokenStore(cfg).Disconnect(account))
			exitOnErr(store.ClearAccount(ctx))
			fmt.Printf("Account %s disconnected\n", account)
		},
	}
	accountShowCmd := cobra.Command{
		Use:   "show",
		Short: "Print the connected account",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			store := openStore(ctx)
			defer store.Close()
			account, err := store.Account(ctx)
			exitOnErr(err)
			if account == "" {
				fmt.Println("No account connected")
				return
			}
			fmt.Println(account)
		},
	}
	accountCmd.AddCommand(&accountConnectCmd, &accountDisconnectCmd, &accountShowCmd)
	rootCmd.AddCommand(&accountCmd)

	// --- sync ---

	syncCmd := cobra.Command{
		Use:   "sync",
		Short: "Upload every video in the folder that has not been uploaded yet",
		Long: `Upload every video in the folder that has not been uploaded yet.
Videos are uploaded one at a time; the first failure stops the run.
Videos uploaded before a failure are not uploaded again by the next run.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			anyNetwork, err := cmd.Flags().GetBool("any-network")
			exitOnErr(err)

			ctx, stop := signalContext()
			defer stop()
			store := openStore(ctx)
			defer store.Close()

			syncer := newSyncer(cfg, store, newUploader(cfg, newTokenStore(cfg)), nil)
			var constraints []jobs.Constraint
			if !anyNetwork {
				constraints = syncConstraints(cfg)
			}

			runner := jobs.NewRunner(cfg.Sync.ConstraintPoll)
			h := runner.Enqueue(syncJobName, syncWork(syncer, cfg.CacheDir), constraints...)
			go func() {
				<-ctx.Done()
				h.Cancel()
			}()
			res, err := h.Wait(context.Background())
			runner.Shutdown()
			exitOnErr(err)

			if res.Message != "" {
				fmt.Println(res.Message)
			}
			if res.State != jobs.Succeeded {
				fmt.Fprintf(os.Stderr, "sync %s\n", res.State)
				os.Exit(1)
			}
		},
	}
	syncCmd.Flags().Bool("any-network", false, "Do not wait for the upload host to be reachable")
	rootCmd.AddCommand(&syncCmd)

	// --- watch ---

	watchCmd := cobra.Command{
		Use:   "watch",
		Short: "Sync whenever videos are added to the folder",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signalContext()
			defer stop()
			store := openStore(ctx)
			defer store.Close()

			folder, err := store.Folder(ctx)
			exitOnErr(err)
			if folder == "" {
				exitOnErr(fmt.Errorf("%w: no target folder configured", lib.ErrPreconditionMissing))
			}

			reg := prometheus.NewRegistry()
			m := metrics.MustNewMetrics(reg)
			if cfg.Sync.MetricsAddr != "" {
				srv := &http.Server{
					Addr:              cfg.Sync.MetricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						lib.Logger().Error("Metrics server failed", "error", err)
					}
				}()
				defer srv.Close()
			}

			syncer := newSyncer(cfg, store, newUploader(cfg, newTokenStore(cfg)), m)
			runner := jobs.NewRunner(cfg.Sync.ConstraintPoll)
			defer runner.Shutdown()
			enqueue := func() {
				runner.Enqueue(syncJobName, syncWork(syncer, cfg.CacheDir), syncConstraints(cfg)...)
			}

			w, err := watch.New(folder, cfg.Sync.WatchDebounce, enqueue)
			exitOnErr(err)
			// Catch up on anything added while not watching.
			enqueue()
			exitOnErr(w.Run(ctx))
		},
	}
	rootCmd.AddCommand(&watchCmd)

	// --- status ---

	statusCmd := cobra.Command{
		Use:   "status",
		Short: "Show the folder, the account and how many videos are waiting",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			store := openStore(ctx)
			defer store.Close()
			exitOnErr(printStatus(ctx, os.Stdout, cfg, store, newTokenStore(cfg)))
		},
	}
	rootCmd.AddCommand(&statusCmd)

	// --- history ---

	historyCmd := cobra.Command{
		Use:   "history",
		Short: "List uploaded videos, newest first",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			limit, err := cmd.Flags().GetInt("limit")
			exitOnErr(err)

			ctx := context.Background()
			store := openStore(ctx)
			defer store.Close()
			exitOnErr(printHistory(ctx, os.Stdout, store, limit))
		},
	}
	historyCmd.Flags().IntP("limit", "n", 20, "Number of uploads to show (0 for all)")
	rootCmd.AddCommand(&historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
