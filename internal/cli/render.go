package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/utils"
)

// TotalLabel is the first cell of the period totals row.
const TotalLabel = "Total"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

// RenderTransactions writes txns as an aligned table, dates and amounts in Brazilian format.
func RenderTransactions(w io.Writer, txns []domain.Transaction) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No transactions found."))
		return err
	}

	tw := newTable(w)
	if _, err := fmt.Fprintln(tw, "ID\tData\tEmpresa\tTipo\tDescrição\tValor\t"); err != nil {
		return err
	}
	for _, txn := range txns {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			txn.ID,
			utils.FormatDateBR(txn.Date),
			txn.Company,
			txn.Kind,
			txn.Description,
			utils.FormatCurrencyBRL(txn.Amount),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RenderDRE writes one row per month followed by the totals row.
func RenderDRE(w io.Writer, report *domain.DREReport) error {
	title := "DRE"
	if report.Company != "" {
		title += " - " + report.Company
	}
	title += periodLabel(report.Period)
	if _, err := fmt.Fprintln(w, FormatTitle(title)); err != nil {
		return err
	}

	if len(report.Months) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No transactions in the selected period."))
		return err
	}

	tw := newTable(w)
	if _, err := fmt.Fprintln(tw, "Mês\tReceita\tCusto\tDespesa\tLucro Bruto\tLucro Líquido\t"); err != nil {
		return err
	}
	for _, row := range report.Months {
		if err := writeFiguresRow(tw, row.Month, row.DREFigures); err != nil {
			return err
		}
	}
	if err := writeFiguresRow(tw, TotalLabel, report.Totals); err != nil {
		return err
	}
	return tw.Flush()
}

func writeFiguresRow(w io.Writer, label string, f domain.DREFigures) error {
	_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
		label,
		utils.FormatCurrencyBRL(f.Revenue),
		utils.FormatCurrencyBRL(f.Cost),
		utils.FormatCurrencyBRL(f.Expense),
		utils.FormatCurrencyBRL(f.GrossProfit),
		utils.FormatCurrencyBRL(f.NetProfit),
	)
	return err
}

// periodLabel renders " (dd/mm/yyyy a dd/mm/yyyy)", or nothing without a period.
func periodLabel(p *domain.Period) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf(" (%s a %s)", utils.FormatTimeBR(p.From), utils.FormatTimeBR(p.To))
}

// RenderExpenseBreakdown writes one row per description followed by the total.
func RenderExpenseBreakdown(w io.Writer, b *domain.ExpenseBreakdown) error {
	title := "Despesas"
	if b.Company != "" {
		title += " - " + b.Company
	}
	if _, err := fmt.Fprintln(w, FormatTitle(title+periodLabel(b.Period))); err != nil {
		return err
	}

	if len(b.Items) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No expenses in the selected period."))
		return err
	}

	tw := newTable(w)
	if _, err := fmt.Fprintln(tw, "Descrição\tValor\t%\t"); err != nil {
		return err
	}
	for _, item := range b.Items {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s%%\t\n",
			item.Description,
			utils.FormatCurrencyBRL(item.Amount),
			utils.FormatWithPrecision(item.Share, 2),
		); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(tw, "%s\t%s\t\t\n", TotalLabel, utils.FormatCurrencyBRL(b.Total)); err != nil {
		return err
	}
	return tw.Flush()
}

// RenderCompanyComparison writes the period totals of each company.
func RenderCompanyComparison(w io.Writer, c *domain.CompanyComparison) error {
	if _, err := fmt.Fprintln(w, FormatTitle("Comparação entre empresas"+periodLabel(c.Period))); err != nil {
		return err
	}

	if len(c.Companies) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No transactions in the selected period."))
		return err
	}

	tw := newTable(w)
	if _, err := fmt.Fprintln(tw, "Empresa\tReceita\tCusto\tDespesa\tLucro Bruto\tLucro Líquido\t"); err != nil {
		return err
	}
	for _, ct := range c.Companies {
		if err := writeFiguresRow(tw, ct.Company, ct.DREFigures); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// RenderCompanies writes one company per line.
func RenderCompanies(w io.Writer, companies []string) error {
	if len(companies) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No companies recorded yet."))
		return err
	}
	for _, c := range companies {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return err
		}
	}
	return nil
}
