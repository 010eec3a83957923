// Command hoopscout runs the scouting API and its maintenance tasks.
//
// Usage:
//
//	hoopscout serve --migrate
//	hoopscout migrate
//	hoopscout seed-profiles --file profiles.yaml
//	hoopscout token --role COACH --ttl 2h
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/christianrafael21/hoopscout/internal/app"
	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
	"github.com/christianrafael21/hoopscout/internal/services"
)

func main() {
	root := &cobra.Command{
		Use:           "hoopscout",
		Short:         "Basketball youth scouting API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(seedProfilesCmd())
	root.AddCommand(tokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp loads config, builds the app and closes it after fn returns.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a, err := app.New(ctx, *cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				if migrate {
					if err := a.Migrate(); err != nil {
						return err
					}
				}
				a.Start()
				return a.Run(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply schema migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				return a.Migrate()
			})
		},
	}
}

func seedProfilesCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "seed-profiles",
		Short: "Upsert reference profiles from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("--file is required")
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				if err := a.Migrate(); err != nil {
					return err
				}
				start := time.Now()
				n, err := a.SeedProfiles(ctx, path)
				if err != nil {
					return err
				}
				a.Log.Info("reference profiles seeded", "count", n, "file", path, "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "YAML file with a top-level profiles list")
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		actor string
		role  string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token for local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			r := ctxutil.ParseRole(role)
			if r == "" {
				return fmt.Errorf("unknown role %q", role)
			}
			id := uuid.New()
			if actor != "" {
				if id, err = uuid.Parse(actor); err != nil {
					return fmt.Errorf("invalid --actor: %w", err)
				}
			}
			auth := services.NewAuthService(logger.Nop(), cfg.JWT.Secret, cfg.JWT.TTL)
			token, err := auth.Mint(id, r, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "actor_id=%s\nrole=%s\ntoken=%s\n", id, r, token)
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "Actor uuid (random when empty)")
	cmd.Flags().StringVar(&role, "role", string(ctxutil.RoleCoach), "COACH, ATLETA or ADMIN")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to jwt.ttl)")
	return cmd
}
