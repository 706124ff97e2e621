package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"roofbox-backend/internal/config"
	"roofbox-backend/internal/jobs"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository/postgres"
	"roofbox-backend/internal/service"

	_ "github.com/lib/pq"
)

type env struct {
	cfg   *config.Config
	db    *sql.DB
	store *postgres.Store
}

func openEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.PingContext(cmd.Context()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &env{cfg: cfg, db: db, store: postgres.NewStore(db)}, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()

			if err := e.store.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}

func grantAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant-admin",
		Short: "Give an existing account access to the admin API",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			revoke, _ := cmd.Flags().GetBool("revoke")

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()

			return setAdmin(cmd.Context(), e.store, email, !revoke, cmd)
		},
	}
	cmd.Flags().String("email", "", "Account email address")
	cmd.Flags().Bool("revoke", false, "Remove admin access instead")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func setAdmin(ctx context.Context, store *postgres.Store, email string, isAdmin bool, cmd *cobra.Command) error {
	user, err := store.UserRepository.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("find user %s: %w", email, err)
	}
	if err := store.UserRepository.SetAdmin(ctx, user.ID, isAdmin); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s admin=%t\n", user.Email, isAdmin)
	return nil
}

func setPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-price",
		Short: "Change a product's daily price",
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, _ := cmd.Flags().GetString("slug")
			raw, _ := cmd.Flags().GetString("price")

			price, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", raw, err)
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()

			product, err := e.store.ProductRepository.GetBySlug(cmd.Context(), slug)
			if err != nil {
				return fmt.Errorf("find product %s: %w", slug, err)
			}

			admin := service.NewAdminService(e.store.ProductRepository, e.store.RentalRequestRepository, e.store.ContactMessageRepository, nil)
			if err := admin.UpdateProductPrice(cmd.Context(), product.ID, price); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s per day\n", product.Slug, product.PricePerDay.StringFixed(2), price.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().String("slug", "", "Product slug")
	cmd.Flags().String("price", "", "New price per day, e.g. 49.00")
	_ = cmd.MarkFlagRequired("slug")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func digestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Send the pending-requests digest now",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.db.Close()

			mailer, err := service.NewMailer(e.cfg.Mail)
			if err != nil {
				return err
			}
			jr := jobs.NewJobRunner(e.store.RentalRequestRepository, e.store.ContactMessageRepository, e.store.SessionRepository, mailer, e.cfg)
			return jr.SendPendingDigest()
		},
	}
}
