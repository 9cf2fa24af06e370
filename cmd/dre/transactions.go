package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/cli"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty store if none exists",
		Long:  `Creates the store with no transactions. An existing store is left untouched.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), func(_ *portssvc.ServiceContainer) error {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Store ready ("+cfg.DataBackend+")"))
				return nil
			})
		},
	}
}

func addCmd() *cobra.Command {
	var company, date, kind, description, amount string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Validates and appends one transaction.

Kind is Receita, Custo or Despesa (English revenue, cost, expense are accepted).
Amount must be a positive decimal such as 1500.25.`,
		Example: `  dre add --company "ACME Ltda" --date 2024-01-05 --kind Receita --description Vendas --amount 1500.25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return apperrors.NewValidationError("valor", "not a valid number: "+amount)
			}
			parsedKind, err := domain.ParseTransactionKind(kind)
			if err != nil {
				return err
			}

			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				txn, err := svc.Transaction.AddTransaction(cmd.Context(), domain.NewTransaction{
					Company:     company,
					Date:        date,
					Kind:        parsedKind,
					Description: description,
					Amount:      value,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Transaction %d recorded", txn.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&date, "date", "", "transaction date YYYY-MM-DD")
	cmd.Flags().StringVar(&kind, "kind", "", "Receita, Custo or Despesa")
	cmd.Flags().StringVar(&description, "description", "", "free text description")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount")
	for _, name := range []string{"company", "date", "kind", "description", "amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func listCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions ordered by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				txns, err := svc.Transaction.ListTransactions(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return cli.RenderTransactions(cmd.OutOrStdout(), txns)
			})
		},
	}
	ff.register(cmd)
	return cmd
}

func companiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "companies",
		Short: "List the companies present in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				companies, err := svc.Transaction.ListCompanies(cmd.Context())
				if err != nil {
					return err
				}
				return cli.RenderCompanies(cmd.OutOrStdout(), companies)
			})
		},
	}
}

func reportCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the monthly DRE",
		Long: `Prints revenue, cost, expense, gross profit and net profit for every month that
has transactions, followed by the totals of the whole period.`,
		Example: `  dre report --company "ACME Ltda" --from 2024-01-01 --to 2024-06-30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				report, err := svc.Reporting.DRE(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return cli.RenderDRE(cmd.OutOrStdout(), report)
			})
		},
	}
	ff.register(cmd)
	cmd.AddCommand(reportExportCmd())
	return cmd
}

func reportExportCmd() *cobra.Command {
	var (
		ff  filterFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the monthly DRE as CSV",
		Long: `Writes one row per month with the columns mes, Receita, Custo, Despesa,
Lucro Bruto and Lucro Líquido. --company, --from and --to are required.
Without --out the file is named dre_{empresa}_{from}_{to}.csv. Use --out - for stdout.`,
		Example: `  dre report export --company "ACME Ltda" --from 2024-01-01 --to 2024-06-30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				var buf bytes.Buffer
				name, err := svc.Reporting.ExportDRE(cmd.Context(), &buf, filter)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = name
				}
				if err := writeOutput(cmd, path, func(w io.Writer) error {
					_, err := buf.WriteTo(w)
					return err
				}); err != nil {
					return err
				}
				if path != "-" {
					fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("DRE written to "+path))
				}
				return nil
			})
		},
	}
	ff.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default dre_{empresa}_{from}_{to}.csv)")
	return cmd
}

func expensesCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:     "expenses",
		Short:   "Break down Despesa totals by description",
		Example: `  dre expenses --company "ACME Ltda" --from 2024-01-01 --to 2024-06-30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				breakdown, err := svc.Reporting.ExpenseBreakdown(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return cli.RenderExpenseBreakdown(cmd.OutOrStdout(), breakdown)
			})
		},
	}
	ff.register(cmd)
	return cmd
}

func compareCmd() *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Compare the DRE totals of every company",
		Example: `  dre compare --from 2024-01-01 --to 2024-06-30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				comparison, err := svc.Reporting.CompareCompanies(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return cli.RenderCompanyComparison(cmd.OutOrStdout(), comparison)
			})
		},
	}
	ff.register(cmd)
	return cmd
}
