package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/hosteltracker/internal/adapter/http/dto"
	"github.com/iho/hosteltracker/internal/infrastructure/auth"
	"github.com/iho/hosteltracker/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hosteltracker",
		Short:         "Hostel Tracker CLI tool",
		Long:          `A command line interface for the Hostel Tracker API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", envOr("HOSTEL_TRACKER_URL", "http://localhost:8080"), "Base URL of the Hostel Tracker API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("HOSTEL_TRACKER_TOKEN"), "Device token for APIs with auth enabled")

	rootCmd.AddCommand(
		dashboardCmd(),
		analyticsCmd(),
		addCmd(),
		parseCmd(),
		exportCmd(),
		importCmd(),
		resetCmd(),
		tokenCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func client() *apiClient {
	return newAPIClient(baseURL, token, timeout)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show balance, budget and the last seven days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var d dto.DashboardResponse
			if err := client().getJSON("/api/v1/dashboard", &d); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sym := d.Settings.CurrencySymbol
			fmt.Fprintf(out, "Balance:    %s %s\n", sym, d.Totals.Balance.StringFixed(2))
			fmt.Fprintf(out, "Income:     %s %s\n", sym, d.Totals.Income.StringFixed(2))
			fmt.Fprintf(out, "Expense:    %s %s\n", sym, d.Totals.Expense.StringFixed(2))
			fmt.Fprintf(out, "Budget:     %s %s of %s (%s%%, %s)\n", sym,
				d.Budget.MonthlyExpense.StringFixed(2), d.Budget.Budget.StringFixed(2),
				d.Budget.Percent.StringFixed(0), d.Budget.Status)
			fmt.Fprintf(out, "Safe spend: %s %s/day for %d days\n", sym, d.Budget.DailySafeSpend.StringFixed(2), d.Budget.DaysLeft)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, p := range d.Weekly {
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", p.Label, p.Date, p.Amount.StringFixed(2))
			}
			return tw.Flush()
		},
	}
}

func analyticsCmd() *cobra.Command {
	var timeframe string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show income vs expense and the category breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var a dto.AnalyticsResponse
			if err := client().getJSON("/api/v1/analytics?timeframe="+url.QueryEscape(timeframe), &a); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Timeframe: %s (%d transactions)\n", a.Timeframe, a.Count)
			fmt.Fprintf(out, "Income:  %s\n", a.IncomeVsExpense.Income.StringFixed(2))
			fmt.Fprintf(out, "Expense: %s\n", a.IncomeVsExpense.Expense.StringFixed(2))

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, row := range a.Breakdown {
				fmt.Fprintf(tw, "  %s\t%s\n", row.Category, row.Total.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&timeframe, "timeframe", "month", "week, month, quarter or all")
	return cmd
}

func addCmd() *cobra.Command {
	var (
		amount   string
		typ      string
		category string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			var tx dto.TransactionResponse
			err = client().sendJSON(http.MethodPost, "/api/v1/transactions", dto.AddTransactionRequest{
				Amount:   value,
				Type:     typ,
				Category: category,
				Notes:    notes,
			}, &tx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s (%s)\n", tx.Type, tx.Amount.StringFixed(2), tx.Category, tx.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount, greater than zero")
	cmd.Flags().StringVar(&typ, "type", "expense", "income or expense")
	cmd.Flags().StringVar(&category, "category", "", "Category name")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func parseCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Turn a sentence into a transaction suggestion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client()

			var resp dto.ParseResponse
			if err := c.sendJSON(http.MethodPost, "/api/v1/transactions/parse", dto.ParseRequest{Text: strings.Join(args, " ")}, &resp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Suggestion == nil {
				fmt.Fprintln(out, resp.Hint)
				return nil
			}

			s := resp.Suggestion
			fmt.Fprintf(out, "%s %s %s %q\n", s.Type, s.Amount.StringFixed(2), s.Category, s.Notes)
			if !save {
				return nil
			}

			var tx dto.TransactionResponse
			err := c.sendJSON(http.MethodPost, "/api/v1/transactions", dto.AddTransactionRequest{
				Amount:   s.Amount,
				Type:     s.Type,
				Category: s.Category,
				Notes:    s.Notes,
			}, &tx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved as %s\n", tx.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Record the suggestion")
	return cmd
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download a backup of the whole state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, header, err := client().do(http.MethodGet, "/api/v1/backup/export", "", nil)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			path := output
			if path == "" {
				path = filepath.Base(attachmentName(header))
				if path == "." || path == "/" {
					path = "hostel_tracker_backup.json"
				}
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return fmt.Errorf("failed to write backup: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file, - for stdout (default: server filename)")
	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the state with a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			data, _, err := client().do(http.MethodPost, "/api/v1/backup/import", "application/json", f)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), data)
		},
	}
}

func resetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase everything and restore the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset without --yes")
			}

			data, _, err := client().do(http.MethodPost, "/api/v1/backup/reset", "", nil)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}

func printSummary(out io.Writer, data []byte) error {
	var summary struct {
		Status       string `json:"status"`
		Transactions int    `json:"transactions"`
		Categories   int    `json:"categories"`
		Debts        int    `json:"debts"`
		Goals        int    `json:"goals"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Fprintf(out, "%s: %d transactions, %d categories, %d debts, %d goals\n",
		summary.Status, summary.Transactions, summary.Categories, summary.Debts, summary.Goals)
	return nil
}

func tokenCmd() *cobra.Command {
	var (
		secret string
		device string
		scope  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a device token signed with the server secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("a signing secret is required (--secret or JWT_SECRET)")
			}
			s, err := auth.ParseScope(scope)
			if err != nil {
				return err
			}

			signed, expiresAt, err := auth.NewJWTManager(secret, ttl).Generate(device, s)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			fmt.Fprintf(cmd.ErrOrStderr(), "device %s, scope %s, expires %s\n", device, s, expiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "Signing secret")
	cmd.Flags().StringVar(&device, "device", "phone", "Device name stored in the token")
	cmd.Flags().StringVar(&scope, "scope", string(auth.ScopeFull), "full or read")
	cmd.Flags().DurationVar(&ttl, "ttl", 720*time.Hour, "Token lifetime")
	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection URL")

	logger := func(cmd *cobra.Command) zerolog.Logger {
		return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).With().Timestamp().Logger()
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return errors.New("--database-url is required")
			}
			return postgres.RunMigrations(databaseURL, logger(cmd))
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return errors.New("--database-url is required")
			}
			return postgres.RunMigrationsDown(databaseURL, logger(cmd))
		},
	}

	cmd.AddCommand(up, down)
	return cmd
}
