package mapping

import (
	"fmt"

	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:          d.ID,
		Company:     d.Company,
		TxnDate:     d.Date,
		Kind:        string(d.Kind),
		Description: d.Description,
		Amount:      d.Amount.String(),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// The result is validated; a row that breaks an invariant is an error.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("amount %q is not a number: %w", m.Amount, err)
	}
	t := domain.Transaction{
		ID:          m.ID,
		Company:     m.Company,
		Date:        m.TxnDate,
		Kind:        domain.TransactionKind(m.Kind),
		Description: m.Description,
		Amount:      amount,
	}
	if err := t.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return t, nil
}
