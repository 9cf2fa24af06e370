package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gabriel4210/DRE/internal/cli"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/core/services"
	"github.com/Gabriel4210/DRE/internal/dto"
	"github.com/Gabriel4210/DRE/internal/platform/config"
	"github.com/Gabriel4210/DRE/internal/platform/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v       = config.NewViper()
	cfg     *config.Config
	rootCmd = &cobra.Command{
		Use:   "dre",
		Short: "Record company transactions and print the monthly DRE",
		Long: `dre records revenue (Receita), cost (Custo) and expense (Despesa) entries per
company and prints the monthly income statement (DRE) with gross and net profit.

The store is selected with --backend (or DATA_BACKEND) and shared with dre_backend.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("backend", config.BackendCSV, "storage backend (csv, sqlite, postgres)")
	flags.String("data-path", "data/user_data.csv", "CSV store path")
	flags.String("sqlite-path", "data/dre.db", "SQLite store path")
	flags.String("pg-url", "", "PostgreSQL connection URL")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	bindFlag(v, "DATA_BACKEND", "backend")
	bindFlag(v, "DATA_PATH", "data-path")
	bindFlag(v, "SQLITE_PATH", "sqlite-path")
	bindFlag(v, "PGSQL_URL", "pg-url")
	bindFlag(v, "LOG_LEVEL", "log-level")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(companiesCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(tokenCmd())
}

func bindFlag(v *viper.Viper, key, flag string) {
	_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// withServices opens the configured store and hands its services to fn.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("failed to close store", "error", closeErr)
		}
	}()

	return fn(services.NewServiceContainer(store.Repos))
}

// filterFlags are the --company/--from/--to flags shared by the listing, reporting and export commands.
type filterFlags struct {
	params dto.ListTransactionsParams
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.params.Company, "company", "", "only this company (exact match)")
	cmd.Flags().StringVar(&f.params.FromDate, "from", "", "period start YYYY-MM-DD (requires --to)")
	cmd.Flags().StringVar(&f.params.ToDate, "to", "", "period end YYYY-MM-DD (requires --from)")
}

func (f *filterFlags) filter() (domain.TransactionFilter, error) {
	return f.params.ToFilter()
}
