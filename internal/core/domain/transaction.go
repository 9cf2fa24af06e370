package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	// MaxTransactionID is the largest id a store accepts or assigns: the largest integer
	// that JSON clients decode without rounding.
	MaxTransactionID int64 = 1<<53 - 1

	// DateLayout is the on-disk and wire format of a transaction date.
	DateLayout = "2006-01-02"
	// MonthLayout is the layout of a DRE month key.
	MonthLayout = "2006-01"
)

// TransactionKind classifies a transaction for the income statement.
type TransactionKind string

// The values are the persisted column values.
const (
	KindRevenue TransactionKind = "Receita"
	KindCost    TransactionKind = "Custo"
	KindExpense TransactionKind = "Despesa"
)

// TransactionKinds lists every valid kind in statement order.
var TransactionKinds = []TransactionKind{KindRevenue, KindCost, KindExpense}

// IsValid reports whether k is one of the three kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindRevenue, KindCost, KindExpense:
		return true
	default:
		return false
	}
}

// Label returns the English name of the kind.
func (k TransactionKind) Label() string {
	switch k {
	case KindRevenue:
		return "Revenue"
	case KindCost:
		return "Cost"
	case KindExpense:
		return "Expense"
	default:
		return string(k)
	}
}

// ParseTransactionKind accepts the persisted value or its English label, case-insensitively.
func ParseTransactionKind(s string) (TransactionKind, error) {
	v := strings.TrimSpace(s)
	for _, k := range TransactionKinds {
		if strings.EqualFold(v, string(k)) || strings.EqualFold(v, k.Label()) {
			return k, nil
		}
	}
	return "", apperrors.NewValidationError("tipo", fmt.Sprintf("unknown transaction kind %q (want Receita, Custo or Despesa)", s))
}

// Transaction is one immutable financial event of the ledger.
type Transaction struct {
	ID          int64           `json:"id"`
	Company     string          `json:"company"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // strictly positive
}

// NewTransaction holds the caller-supplied fields of a transaction before the store assigns its ID.
type NewTransaction struct {
	Company     string
	Date        string
	Kind        TransactionKind
	Description string
	Amount      decimal.Decimal
}

// Validate checks the structural invariants of a transaction about to be written.
func (n NewTransaction) Validate() error {
	if strings.TrimSpace(n.Company) == "" {
		return apperrors.NewValidationError("empresa", "must not be empty")
	}
	if _, err := ParseDate(n.Date); err != nil {
		return apperrors.NewValidationError("data", fmt.Sprintf("must be a YYYY-MM-DD date, got %q", n.Date))
	}
	if !n.Kind.IsValid() {
		return apperrors.NewValidationError("tipo", fmt.Sprintf("unknown transaction kind %q", string(n.Kind)))
	}
	if strings.TrimSpace(n.Description) == "" {
		return apperrors.NewValidationError("descricao", "must not be empty")
	}
	if !n.Amount.IsPositive() {
		return apperrors.NewValidationError("valor", "must be greater than zero")
	}
	return nil
}

// Normalized returns n with the surrounding whitespace of its text fields removed.
// Stores persist the normalized form so a value reads back exactly as it was saved.
func (n NewTransaction) Normalized() NewTransaction {
	n.Company = strings.TrimSpace(n.Company)
	n.Description = strings.TrimSpace(n.Description)
	return n
}

// WithID binds the store-assigned id.
func (n NewTransaction) WithID(id int64) Transaction {
	return Transaction{
		ID:          id,
		Company:     n.Company,
		Date:        n.Date,
		Kind:        n.Kind,
		Description: n.Description,
		Amount:      n.Amount,
	}
}

// Validate checks a complete transaction, including its id.
func (t Transaction) Validate() error {
	if t.ID <= 0 {
		return apperrors.NewValidationError("id", "must be a positive integer")
	}
	if t.ID > MaxTransactionID {
		return apperrors.NewValidationError("id", fmt.Sprintf("must not exceed %d", MaxTransactionID))
	}
	return NewTransaction{
		Company:     t.Company,
		Date:        t.Date,
		Kind:        t.Kind,
		Description: t.Description,
		Amount:      t.Amount,
	}.Validate()
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MonthKey returns the YYYY-MM key of an ISO date.
func MonthKey(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.Format(MonthLayout), nil
}

// Period is an inclusive calendar-date range.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewPeriod parses both bounds and rejects an inverted range.
func NewPeriod(from, to string) (*Period, error) {
	f, err := ParseDate(from)
	if err != nil {
		return nil, apperrors.NewValidationError("fromDate", fmt.Sprintf("must be a YYYY-MM-DD date, got %q", from))
	}
	t, err := ParseDate(to)
	if err != nil {
		return nil, apperrors.NewValidationError("toDate", fmt.Sprintf("must be a YYYY-MM-DD date, got %q", to))
	}
	if f.After(t) {
		return nil, apperrors.NewValidationError("fromDate", "must be before or equal to toDate")
	}
	return &Period{From: f, To: t}, nil
}

// Bounds returns the period as ISO strings.
func (p Period) Bounds() (string, string) {
	return p.From.Format(DateLayout), p.To.Format(DateLayout)
}

// Contains reports whether an ISO date lies inside the period, both ends included.
// ISO dates order lexicographically the same way they order on the calendar.
func (p Period) Contains(date string) bool {
	from, to := p.Bounds()
	return date >= from && date <= to
}

// TransactionFilter narrows a transaction query. Zero values mean "no filter".
type TransactionFilter struct {
	Company string
	Period  *Period
}

// Normalized trims the company the same way stored records are trimmed.
func (f TransactionFilter) Normalized() TransactionFilter {
	f.Company = strings.TrimSpace(f.Company)
	return f
}

// Matches reports whether t passes the filter.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.Company != "" && t.Company != f.Company {
		return false
	}
	if f.Period != nil && !f.Period.Contains(t.Date) {
		return false
	}
	return true
}

// Apply returns the matching transactions in their original order.
func (f TransactionFilter) Apply(txns []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Normalized returns t with the surrounding whitespace of its text fields removed.
func (t Transaction) Normalized() Transaction {
	t.Company = strings.TrimSpace(t.Company)
	t.Description = strings.TrimSpace(t.Description)
	return t
}

// PrepareImport normalizes every record of an import batch and validates it.
// A zero id is allowed and means the store picks one. txns is not modified.
func PrepareImport(txns []Transaction) ([]Transaction, error) {
	prepared := make([]Transaction, len(txns))
	for i, t := range txns {
		t = t.Normalized()
		check := t
		if check.ID == 0 {
			check.ID = 1
		}
		if err := check.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		prepared[i] = t
	}
	return prepared, nil
}

// IDAllocator hands out consecutive ids above a floor.
type IDAllocator struct {
	last int64
}

// NewIDAllocator starts allocating after floor, usually the largest id already taken.
func NewIDAllocator(floor int64) *IDAllocator {
	return &IDAllocator{last: floor}
}

// Next returns the following id, or a ValidationError once MaxTransactionID is reached.
func (a *IDAllocator) Next() (int64, error) {
	id, err := NextID(a.last)
	if err != nil {
		return 0, err
	}
	a.last = id
	return id, nil
}

// NextID returns the id following current, failing once MaxTransactionID has been handed out.
func NextID(current int64) (int64, error) {
	if current >= MaxTransactionID {
		return 0, apperrors.NewValidationError("id", fmt.Sprintf("no ids left: %d is the largest allowed", MaxTransactionID))
	}
	return current + 1, nil
}

// MaxID returns the largest id in txns, or zero.
func MaxID(txns []Transaction) int64 {
	var m int64
	for _, t := range txns {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
