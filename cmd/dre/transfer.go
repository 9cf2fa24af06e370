package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Gabriel4210/DRE/internal/cli"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/middleware"
	"github.com/Gabriel4210/DRE/internal/utils/atomicfile"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Append transactions from a CSV file",
		Long: `Reads a CSV with the columns id, empresa, data, tipo, descricao and valor.
Rows whose id is already stored are skipped. Rows with an empty id get a new one.
Nothing is written if any row is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				result, err := svc.Transaction.ImportTransactions(cmd.Context(), f)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
					fmt.Sprintf("%d transactions imported, %d skipped", result.Imported, result.Skipped)))
				return nil
			})
		},
	}
}

func exportCmd() *cobra.Command {
	var (
		ff  filterFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write transactions as CSV",
		Long:  `Writes the matching transactions in the same CSV format import reads. Use --out - for stdout.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				var count int
				err := writeOutput(cmd, out, func(w io.Writer) error {
					var err error
					count, err = svc.Transaction.ExportTransactions(cmd.Context(), w, filter)
					return err
				})
				if err != nil {
					return err
				}
				if out != "-" {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%d transactions written to %s", count, out)))
				}
				return nil
			})
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file")
	return cmd
}

// writeOutput sends write to stdout when out is "-". Otherwise the file at out
// is only replaced once write has succeeded.
func writeOutput(cmd *cobra.Command, out string, write func(io.Writer) error) error {
	if out == "-" {
		return write(cmd.OutOrStdout())
	}
	if err := atomicfile.WriteFile(out, 0o644, write); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the write endpoints of dre_backend",
		Long:  `Signs an HS256 token with JWT_SECRET. The server must run with the same secret.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.JWTSecret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := middleware.IssueToken(cfg.JWTSecret, subject, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "dre-cli", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
