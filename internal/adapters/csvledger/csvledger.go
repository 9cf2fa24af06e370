// Package csvledger reads and writes the six-column transaction layout
// shared by the CSV store, imports and exports, and writes DRE exports.
package csvledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Column names of the persisted layout.
const (
	ColID          = "id"
	ColCompany     = "empresa"
	ColDate        = "data"
	ColKind        = "tipo"
	ColDescription = "descricao"
	ColAmount      = "valor"
)

// Header is the exact header row written to every file.
var Header = []string{ColID, ColCompany, ColDate, ColKind, ColDescription, ColAmount}

// columns maps a column name to its position in a file.
type columns map[string]int

// parseHeader locates every required column. Extra columns are ignored and the order is free.
func parseHeader(record []string) (columns, []string) {
	cols := make(columns, len(record))
	for i, name := range record {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	var missing []string
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	return cols, missing
}

func (c columns) get(record []string, name string) string {
	return strings.TrimSpace(record[c[name]])
}

// decodeRow turns one record into a transaction. Import rows may leave the id
// blank, which decodes to zero, and have their text fields trimmed. Ledger
// rows keep company and description exactly as stored.
func (c columns) decodeRow(record []string, fromImport bool) (domain.Transaction, error) {
	var txn domain.Transaction

	rawID := c.get(record, ColID)
	switch {
	case rawID == "" && fromImport:
	case rawID == "":
		return txn, apperrors.NewValidationError(ColID, "must not be empty")
	default:
		id, err := parseID(rawID)
		if err != nil {
			return txn, err
		}
		txn.ID = id
	}

	kind, err := domain.ParseTransactionKind(c.get(record, ColKind))
	if err != nil {
		return txn, err
	}

	amount, err := decimal.NewFromString(c.get(record, ColAmount))
	if err != nil {
		return txn, apperrors.NewValidationError(ColAmount, fmt.Sprintf("not a number: %q", c.get(record, ColAmount)))
	}

	txn.Company = record[c[ColCompany]]
	txn.Date = c.get(record, ColDate)
	txn.Kind = kind
	txn.Description = record[c[ColDescription]]
	txn.Amount = amount
	if fromImport {
		txn = txn.Normalized()
	}

	check := domain.NewTransaction{
		Company:     txn.Company,
		Date:        txn.Date,
		Kind:        txn.Kind,
		Description: txn.Description,
		Amount:      txn.Amount,
	}
	if err := check.Validate(); err != nil {
		return txn, err
	}
	return txn, nil
}

// parseID accepts plain integers and the integral floats some spreadsheet tools write ("17.0").
// Ids above domain.MaxTransactionID are rejected rather than truncated.
func parseID(raw string) (int64, error) {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id <= 0 {
			return 0, apperrors.NewValidationError(ColID, "must be a positive integer")
		}
		if id > domain.MaxTransactionID {
			return 0, idTooLarge(raw)
		}
		return id, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.Equal(d.Truncate(0)) || !d.IsPositive() {
		return 0, apperrors.NewValidationError(ColID, fmt.Sprintf("must be a positive integer, got %q", raw))
	}
	if d.GreaterThan(decimal.NewFromInt(domain.MaxTransactionID)) {
		return 0, idTooLarge(raw)
	}
	return d.IntPart(), nil
}

func idTooLarge(raw string) error {
	return apperrors.NewValidationError(ColID, fmt.Sprintf("%q exceeds the largest id %d", raw, domain.MaxTransactionID))
}

func errorLine(err error) int {
	var pErr *csv.ParseError
	if errors.As(err, &pErr) {
		return pErr.Line
	}
	return 0
}

// newReader tolerates the padding hand-edited import files carry. Ledger
// files are read verbatim.
func newReader(r io.Reader, trimLeadingSpace bool) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = trimLeadingSpace
	return cr
}

// ReadLedger decodes a persisted store file. Any problem, including a missing
// header or a malformed row, is reported as a DataError naming source and line.
func ReadLedger(r io.Reader, source string) ([]domain.Transaction, error) {
	cr := newReader(r, false)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewDataError(source, 1, "missing header row", nil)
	}
	if err != nil {
		return nil, apperrors.NewDataError(source, 1, "unreadable header row", err)
	}
	cols, missing := parseHeader(header)
	if len(missing) > 0 {
		return nil, apperrors.NewDataError(source, 1, "missing columns: "+strings.Join(missing, ", "), nil)
	}

	txns := []domain.Transaction{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewDataError(source, errorLine(err), "malformed row", err)
		}
		line, _ := cr.FieldPos(0)
		txn, err := cols.decodeRow(record, false)
		if err != nil {
			return nil, apperrors.NewDataError(source, line, "invalid transaction", err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// ReadImport decodes a user-supplied file. A missing required column or a
// malformed row is a ValidationError. Rows with a blank id decode with ID zero.
func ReadImport(r io.Reader) ([]domain.Transaction, error) {
	cr := newReader(r, true)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewValidationError("", "import file is empty")
	}
	if err != nil {
		return nil, apperrors.NewValidationError("", fmt.Sprintf("unreadable header row: %v", err))
	}
	cols, missing := parseHeader(header)
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("", "missing required columns: "+strings.Join(missing, ", "))
	}

	txns := []domain.Transaction{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewValidationError("", fmt.Sprintf("line %d: %v", errorLine(err), err))
		}
		line, _ := cr.FieldPos(0)
		txn, err := cols.decodeRow(record, true)
		if err != nil {
			var vErr *apperrors.ValidationError
			if errors.As(err, &vErr) {
				return nil, apperrors.NewValidationError(vErr.Field, fmt.Sprintf("line %d: %s", line, vErr.Msg))
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// Write encodes txns with the header row first.
func Write(w io.Writer, txns []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, t := range txns {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Company,
			t.Date,
			string(t.Kind),
			t.Description,
			t.Amount.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
