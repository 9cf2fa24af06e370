// Package sqlite stores the transaction log in an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	"github.com/Gabriel4210/DRE/internal/models"
	"github.com/Gabriel4210/DRE/internal/utils/mapping"

	_ "modernc.org/sqlite"
)

// SQLiteTransactionRepository implements portsrepo.TransactionRepositoryFacade on SQLite.
type SQLiteTransactionRepository struct {
	db     *sql.DB
	dbPath string
}

var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

// NewSQLiteTransactionRepository opens the database at dbPath, creating its directory.
// Initialize must be called before the first query.
func NewSQLiteTransactionRepository(dbPath string) (*SQLiteTransactionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection serialises every writer in this process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteTransactionRepository{db: db, dbPath: dbPath}, nil
}

// Close releases the database handle.
func (r *SQLiteTransactionRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Initialize applies the schema migrations.
func (r *SQLiteTransactionRepository) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := RunMigrations(r.dbPath); err != nil {
		return apperrors.NewAppError(500, "failed to migrate transaction store", err)
	}
	return nil
}

// SaveTransaction inserts txn, allocating max(id)+1 in the same statement.
// No row is inserted once the id space is used up.
func (r *SQLiteTransactionRepository) SaveTransaction(ctx context.Context, txn domain.NewTransaction) (int64, error) {
	txn = txn.Normalized()
	if err := txn.Validate(); err != nil {
		return 0, err
	}

	query := `
		INSERT INTO dre_transactions (id, company, txn_date, kind, description, amount)
		SELECT COALESCE(MAX(id), 0) + 1, ?, ?, ?, ?, ? FROM dre_transactions
		HAVING COALESCE(MAX(id), 0) < ?
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		txn.Company, txn.Date, string(txn.Kind), txn.Description, txn.Amount.String(),
		domain.MaxTransactionID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = domain.NextID(domain.MaxTransactionID)
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

// FindTransactions returns the rows that pass filter in insertion order.
func (r *SQLiteTransactionRepository) FindTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	filter = filter.Normalized()
	var (
		conds []string
		args  []any
	)
	if filter.Company != "" {
		conds = append(conds, "company = ?")
		args = append(args, filter.Company)
	}
	if filter.Period != nil {
		from, to := filter.Period.Bounds()
		conds = append(conds, "txn_date >= ? AND txn_date <= ?")
		args = append(args, from, to)
	}

	query := `SELECT id, company, txn_date, kind, description, amount FROM dre_transactions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	result := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.ID, &m.Company, &m.TxnDate, &m.Kind, &m.Description, &m.Amount); err != nil {
			return nil, apperrors.NewDataError(r.dbPath, 0, "unreadable row", err)
		}
		t, err := mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, apperrors.NewDataError(r.dbPath, 0, fmt.Sprintf("invalid transaction %d", m.ID), err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return result, nil
}

// ListCompanies returns the distinct company names, sorted.
func (r *SQLiteTransactionRepository) ListCompanies(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT company FROM dre_transactions ORDER BY company`)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	companies := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

// ImportTransactions inserts the batch in one database transaction, skipping ids already taken.
func (r *SQLiteTransactionRepository) ImportTransactions(ctx context.Context, txns []domain.Transaction) (domain.ImportResult, error) {
	var result domain.ImportResult
	txns, err := domain.PrepareImport(txns)
	if err != nil {
		return result, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var current int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM dre_transactions`).Scan(&current); err != nil {
		return result, fmt.Errorf("read max transaction id: %w", err)
	}
	ids := domain.NewIDAllocator(max(current, domain.MaxID(txns)))

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dre_transactions (id, company, txn_date, kind, description, amount)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return result, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, t := range txns {
		if t.ID == 0 {
			if t.ID, err = ids.Next(); err != nil {
				return domain.ImportResult{}, err
			}
		}
		id := t.ID
		m := mapping.ToModelTransaction(t)
		res, err := stmt.ExecContext(ctx, m.ID, m.Company, m.TxnDate, m.Kind, m.Description, m.Amount)
		if err != nil {
			return domain.ImportResult{}, fmt.Errorf("import transaction %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return domain.ImportResult{}, fmt.Errorf("import transaction %d: %w", id, err)
		}
		if n == 0 {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	if err := tx.Commit(); err != nil {
		return domain.ImportResult{}, apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return result, nil
}
