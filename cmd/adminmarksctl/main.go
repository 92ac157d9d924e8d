// Command adminmarksctl browses and toggles admin bookmarks from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/adminmarks/internal/client"
	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/logger"
	"github.com/MrSnakeDoc/adminmarks/internal/menusync"
	"github.com/MrSnakeDoc/adminmarks/internal/version"
)

var (
	// Global flags
	server     string
	user       string
	adminBase  string
	userHeader string
	lang       string
	screen     string
	timeout    time.Duration
	verbose    bool

	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "adminmarksctl",
	Short:         "Browse and toggle admin bookmarks",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log = logger.New("debug", true)
		} else {
			log = logger.NewNop()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu [current-id]",
	Short: "Print the bookmark menus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var current int64
		if len(args) == 1 {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current = id
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx, cmd, current)
		if err != nil {
			return err
		}
		return s.mirror.Render()
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Bookmark or unbookmark a content item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		s, err := openSession(ctx, cmd, id)
		if err != nil {
			return err
		}

		res, err := s.syncer.Toggle(ctx, id)
		if err != nil {
			return err
		}

		state := "bookmarked"
		if res.Removed {
			state = "removed"
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "item %d %s\n", res.ItemID, state)
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "adminmarksctl %s (commit %s, built %s, %s)\n",
			version.Version, version.Commit, version.BuildDate, version.GoVersion)
	},
}

type session struct {
	mirror *menusync.Mirror
	syncer *menusync.Syncer
}

// openSession bootstraps the client configuration and wires the mirror to a
// terminal surface.
func openSession(ctx context.Context, cmd *cobra.Command, current int64) (*session, error) {
	api, err := client.New(client.Options{
		BaseURL:    server,
		AdminBase:  adminBase,
		UserHeader: userHeader,
		User:       user,
		Language:   lang,
	})
	if err != nil {
		return nil, err
	}

	cfg, err := api.Bootstrap(ctx, screen, current)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	log.Debug("bootstrapped",
		logger.Int("menus", len(cfg.Menus)),
		logger.Strings("anchors", cfg.Anchors))

	var mirror *menusync.Mirror
	term := menusync.NewTerminal(cmd.OutOrStdout(), cfg, func(ctx context.Context) (*domain.ClientConfig, error) {
		fresh, err := api.Bootstrap(ctx, screen, current)
		if err != nil {
			return nil, err
		}
		mirror.Reset(fresh)
		return fresh, nil
	})
	mirror = menusync.NewMirror(cfg, term, log)

	return &session{
		mirror: mirror,
		syncer: menusync.NewSyncer(api, cfg, mirror, log),
	}, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&server, "server", "s", envOr("ADMINMARKS_SERVER", "http://localhost:8080"), "server base URL")
	pf.StringVarP(&user, "user", "u", os.Getenv("ADMINMARKS_USER"), "acting user id")
	pf.StringVar(&adminBase, "admin-base", "/admin", "admin mount point")
	pf.StringVar(&userHeader, "user-header", "X-Remote-User", "identity header name")
	pf.StringVar(&lang, "lang", "", "Accept-Language sent with requests")
	pf.StringVar(&screen, "screen", "", "screen the client pretends to be on")
	pf.DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(menuCmd, toggleCmd, versionCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
