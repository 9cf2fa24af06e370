package models

// Transaction is one dre_transactions row as the SQL stores read it.
// Dates and amounts travel as text so both engines scan into the same shape.
type Transaction struct {
	ID          int64  `db:"id"`
	Company     string `db:"company"`
	TxnDate     string `db:"txn_date"` // YYYY-MM-DD
	Kind        string `db:"kind"`     // Receita, Custo or Despesa
	Description string `db:"description"`
	Amount      string `db:"amount"` // canonical decimal text, e.g. "1500.25"
}
