// Package csvstore persists the transaction log as a single CSV file.
package csvstore

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Gabriel4210/DRE/internal/adapters/csvledger"
	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portsrepo "github.com/Gabriel4210/DRE/internal/core/ports/repositories"
	"github.com/Gabriel4210/DRE/internal/utils/atomicfile"
	"github.com/gofrs/flock"
)

const lockRetryDelay = 20 * time.Millisecond

// TransactionRepository stores transactions in a CSV file.
// Writers are serialised in-process by a mutex and across processes by an
// advisory lock on "<path>.lock". Every write replaces the file through a
// rename, so readers only ever see complete files.
type TransactionRepository struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// NewTransactionRepository creates a repository backed by the file at path.
// Initialize must be called before the first query.
func NewTransactionRepository(path string) *TransactionRepository {
	return &TransactionRepository{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the location of the backing file.
func (r *TransactionRepository) Path() string {
	return r.path
}

// Initialize creates the directory and a header-only file when absent.
// An existing file is left untouched but must decode cleanly.
func (r *TransactionRepository) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperrors.NewAppError(500, "failed to create data directory", err)
	}

	unlock, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	_, err = os.Stat(r.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return r.writeAll(nil)
	case err != nil:
		return apperrors.NewAppError(500, "failed to stat transaction store", err)
	}

	_, err = r.load()
	return err
}

// SaveTransaction validates txn and appends it with id max(existing)+1.
func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.NewTransaction) (int64, error) {
	txn = txn.Normalized()
	if err := txn.Validate(); err != nil {
		return 0, err
	}

	unlock, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer unlock()

	existing, err := r.load()
	if err != nil {
		return 0, err
	}

	id, err := domain.NextID(domain.MaxID(existing))
	if err != nil {
		return 0, err
	}
	if err := r.writeAll(append(existing, txn.WithID(id))); err != nil {
		return 0, err
	}
	return id, nil
}

// FindTransactions returns the stored transactions that pass filter, in file order.
func (r *TransactionRepository) FindTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	filter = filter.Normalized()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	return filter.Apply(all), nil
}

// ListCompanies returns the distinct company names, sorted.
func (r *TransactionRepository) ListCompanies(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	return distinctCompanies(all), nil
}

// ImportTransactions appends txns in one write, skipping ids already present.
// Records with a zero id receive fresh ids above every id in the store and the batch.
func (r *TransactionRepository) ImportTransactions(ctx context.Context, txns []domain.Transaction) (domain.ImportResult, error) {
	var result domain.ImportResult
	txns, err := domain.PrepareImport(txns)
	if err != nil {
		return result, err
	}

	unlock, err := r.acquire(ctx)
	if err != nil {
		return result, err
	}
	defer unlock()

	existing, err := r.load()
	if err != nil {
		return result, err
	}

	merged, result, err := mergeImport(existing, txns)
	if err != nil {
		return domain.ImportResult{}, err
	}
	if result.Imported == 0 {
		return result, nil
	}
	if err := r.writeAll(merged); err != nil {
		return domain.ImportResult{}, err
	}
	return result, nil
}

// acquire takes the in-process mutex and then the file lock.
func (r *TransactionRepository) acquire(ctx context.Context) (func(), error) {
	r.mu.Lock()
	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		r.mu.Unlock()
		if err == nil {
			err = errors.New("lock not acquired")
		}
		return nil, apperrors.NewAppError(500, "failed to lock transaction store", err)
	}
	return func() {
		_ = r.lock.Unlock()
		r.mu.Unlock()
	}, nil
}

func (r *TransactionRepository) load() ([]domain.Transaction, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, apperrors.NewDataError(r.path, 0, "cannot open transaction store", err)
	}
	defer f.Close()

	return csvledger.ReadLedger(f, r.path)
}

// writeAll replaces the store with txns through a synced temp file and a rename.
func (r *TransactionRepository) writeAll(txns []domain.Transaction) error {
	err := atomicfile.WriteFile(r.path, 0o644, func(w io.Writer) error {
		if err := csvledger.Write(w, txns); err != nil {
			return apperrors.NewAppError(500, "failed to encode transactions", err)
		}
		return nil
	})
	var appErr *apperrors.AppError
	if err != nil && !errors.As(err, &appErr) {
		return apperrors.NewAppError(500, "failed to replace transaction store", err)
	}
	return err
}

func distinctCompanies(txns []domain.Transaction) []string {
	seen := make(map[string]struct{})
	companies := []string{}
	for _, t := range txns {
		if _, ok := seen[t.Company]; ok {
			continue
		}
		seen[t.Company] = struct{}{}
		companies = append(companies, t.Company)
	}
	sort.Strings(companies)
	return companies
}

// mergeImport appends the records of batch whose ids are not yet taken.
func mergeImport(existing, batch []domain.Transaction) ([]domain.Transaction, domain.ImportResult, error) {
	var result domain.ImportResult

	taken := make(map[int64]struct{}, len(existing)+len(batch))
	for _, t := range existing {
		taken[t.ID] = struct{}{}
	}
	ids := domain.NewIDAllocator(max(domain.MaxID(existing), domain.MaxID(batch)))

	merged := existing
	for _, t := range batch {
		if t.ID == 0 {
			id, err := ids.Next()
			if err != nil {
				return nil, domain.ImportResult{}, err
			}
			t.ID = id
		} else if _, dup := taken[t.ID]; dup {
			result.Skipped++
			continue
		}
		taken[t.ID] = struct{}{}
		merged = append(merged, t)
		result.Imported++
	}
	return merged, result, nil
}
