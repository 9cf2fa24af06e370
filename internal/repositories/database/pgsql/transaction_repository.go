package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	"github.com/Gabriel4210/DRE/internal/models"
	"github.com/Gabriel4210/DRE/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	transactionsTable  = "dre_transactions"
	transactionsSource = "postgres:" + transactionsTable

	insertTransactionSQL = `INSERT INTO dre_transactions (id, company, txn_date, kind, description, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade using pgx.
type PgxTransactionRepository struct {
	BaseRepository
	databaseURL string
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// NewPgxTransactionRepository creates a new repository. databaseURL is used only to run migrations.
func NewPgxTransactionRepository(pool *pgxpool.Pool, databaseURL string) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		databaseURL:    databaseURL,
	}
}

// Initialize creates the schema through migrations. Existing rows are untouched.
func (r *PgxTransactionRepository) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := RunMigrations(r.databaseURL); err != nil {
		return apperrors.NewAppError(500, "failed to migrate transaction store", err)
	}
	return nil
}

// SaveTransaction inserts txn with id max(existing)+1 while holding the table lock.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.NewTransaction) (int64, error) {
	txn = txn.Normalized()
	if err := txn.Validate(); err != nil {
		return 0, err
	}
	date, _ := domain.ParseDate(txn.Date)

	var id int64
	err := r.withTableLock(ctx, transactionsTable, func(tx pgx.Tx) error {
		current, err := currentMaxID(ctx, tx)
		if err != nil {
			return err
		}
		if id, err = domain.NextID(current); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertTransactionSQL, id, txn.Company, date, string(txn.Kind), txn.Description, txn.Amount.String()); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindTransactions returns the rows that pass filter in insertion order.
func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query, args := buildFindQuery(filter)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.ID, &m.Company, &m.TxnDate, &m.Kind, &m.Description, &m.Amount); err != nil {
			return nil, apperrors.NewDataError(transactionsSource, 0, "unreadable row", err)
		}
		t, err := mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, apperrors.NewDataError(transactionsSource, 0, fmt.Sprintf("invalid transaction %d", m.ID), err)
		}
		result = append(result, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return result, nil
}

// ListCompanies returns the distinct company names, sorted.
func (r *PgxTransactionRepository) ListCompanies(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT company FROM dre_transactions ORDER BY company COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("error querying companies: %w", err)
	}
	companies, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning companies: %w", err)
	}
	if companies == nil {
		return []string{}, nil
	}
	return companies, nil
}

// ImportTransactions inserts the batch in one database transaction, skipping ids already taken.
func (r *PgxTransactionRepository) ImportTransactions(ctx context.Context, txns []domain.Transaction) (domain.ImportResult, error) {
	var result domain.ImportResult
	txns, err := domain.PrepareImport(txns)
	if err != nil {
		return result, err
	}

	err = r.withTableLock(ctx, transactionsTable, func(tx pgx.Tx) error {
		current, err := currentMaxID(ctx, tx)
		if err != nil {
			return err
		}
		ids := domain.NewIDAllocator(max(current, domain.MaxID(txns)))

		for _, t := range txns {
			if t.ID == 0 {
				if t.ID, err = ids.Next(); err != nil {
					return err
				}
			}
			date, _ := domain.ParseDate(t.Date)
			tag, err := tx.Exec(ctx, insertTransactionSQL+" ON CONFLICT (id) DO NOTHING",
				t.ID, t.Company, date, string(t.Kind), t.Description, t.Amount.String())
			if err != nil {
				return fmt.Errorf("failed to import transaction %d: %w", t.ID, err)
			}
			if tag.RowsAffected() == 0 {
				result.Skipped++
				continue
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, err
	}
	return result, nil
}

// buildFindQuery renders the SELECT for filter with positional arguments.
func buildFindQuery(filter domain.TransactionFilter) (string, []any) {
	filter = filter.Normalized()
	var (
		conds []string
		args  []any
	)
	if filter.Company != "" {
		args = append(args, filter.Company)
		conds = append(conds, fmt.Sprintf("company = $%d", len(args)))
	}
	if filter.Period != nil {
		args = append(args, filter.Period.From, filter.Period.To)
		conds = append(conds, fmt.Sprintf("txn_date BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	query := `SELECT id, company, to_char(txn_date, 'YYYY-MM-DD'), kind, description, amount::text FROM dre_transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY seq", args
}

func currentMaxID(ctx context.Context, tx pgx.Tx) (int64, error) {
	var id int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM `+transactionsTable).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read max transaction id: %w", err)
	}
	return id, nil
}
