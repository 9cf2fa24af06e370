package csvledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/utils"
)

// DREHeader is the header row of an exported monthly DRE.
var DREHeader = []string{"mes", "Receita", "Custo", "Despesa", "Lucro Bruto", "Lucro Líquido"}

// WriteDRE encodes the monthly rows of report, amounts with two decimals.
// The period totals are not part of the file.
func WriteDRE(w io.Writer, report *domain.DREReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DREHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range report.Months {
		record := []string{
			row.Month,
			utils.FormatWithPrecision(row.Revenue, 2),
			utils.FormatWithPrecision(row.Cost, 2),
			utils.FormatWithPrecision(row.Expense, 2),
			utils.FormatWithPrecision(row.GrossProfit, 2),
			utils.FormatWithPrecision(row.NetProfit, 2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write month %s: %w", row.Month, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// DREFileName names an exported DRE "dre_{empresa}_{from}_{to}.csv".
// Characters that are unsafe in file names are replaced with '_'.
func DREFileName(company string, period domain.Period) string {
	from, to := period.Bounds()
	return fmt.Sprintf("dre_%s_%s_%s.csv", safeFileComponent(company), from, to)
}

func safeFileComponent(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
