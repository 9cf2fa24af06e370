package sqlite_test

import (
	"context"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	"github.com/Gabriel4210/DRE/internal/repositories/database/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SQLiteStoreTestSuite struct {
	suite.Suite
	ctx    context.Context
	dbPath string
	repo   *sqlite.SQLiteTransactionRepository
}

func (s *SQLiteStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dbPath = filepath.Join(s.T().TempDir(), "data", "dre.db")

	repo, err := sqlite.NewSQLiteTransactionRepository(s.dbPath)
	s.Require().NoError(err)
	s.Require().NoError(repo.Initialize(s.ctx))
	s.repo = repo
}

func (s *SQLiteStoreTestSuite) TearDownTest() {
	s.Require().NoError(s.repo.Close())
}

func TestSQLiteStoreTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreTestSuite))
}

func newTxn(company, date string, kind domain.TransactionKind, amount string) domain.NewTransaction {
	return domain.NewTransaction{
		Company:     company,
		Date:        date,
		Kind:        kind,
		Description: "item",
		Amount:      decimal.RequireFromString(amount),
	}
}

func (s *SQLiteStoreTestSuite) TestEmptyStore() {
	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.NotNil(txns)
	s.Empty(txns)

	companies, err := s.repo.ListCompanies(s.ctx)
	s.Require().NoError(err)
	s.NotNil(companies)
	s.Empty(companies)
}

func (s *SQLiteStoreTestSuite) TestInitializeIsIdempotent() {
	_, err := s.repo.SaveTransaction(s.ctx, newTxn("A", "2024-01-01", domain.KindRevenue, "10"))
	s.Require().NoError(err)

	s.Require().NoError(s.repo.Initialize(s.ctx))

	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Len(txns, 1)
}

func (s *SQLiteStoreTestSuite) TestSaveAndFind() {
	id1, err := s.repo.SaveTransaction(s.ctx, newTxn("A", "2024-01-05", domain.KindRevenue, "1000.10"))
	s.Require().NoError(err)
	id2, err := s.repo.SaveTransaction(s.ctx, newTxn("B", "2024-01-06", domain.KindCost, "5"))
	s.Require().NoError(err)
	_, err = s.repo.SaveTransaction(s.ctx, newTxn("A", "2024-02-01", domain.KindExpense, "7"))
	s.Require().NoError(err)

	s.Equal(int64(1), id1)
	s.Equal(int64(2), id2)

	jan, err := domain.NewPeriod("2024-01-01", "2024-01-31")
	s.Require().NoError(err)
	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{Company: "A", Period: jan})
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal("2024-01-05", txns[0].Date)
	s.Equal(domain.KindRevenue, txns[0].Kind)
	s.True(txns[0].Amount.Equal(decimal.RequireFromString("1000.1")))

	companies, err := s.repo.ListCompanies(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"A", "B"}, companies)
}

func (s *SQLiteStoreTestSuite) TestSaveRejectsInvalid() {
	_, err := s.repo.SaveTransaction(s.ctx, newTxn("A", "2024-01-05", domain.KindRevenue, "-1"))
	s.ErrorIs(err, apperrors.ErrValidation)

	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Empty(txns)
}

func (s *SQLiteStoreTestSuite) TestConcurrentSavesGetDistinctIDs() {
	const writers = 10
	var wg sync.WaitGroup
	ids := make(chan int64, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := s.repo.SaveTransaction(s.ctx, newTxn("A", "2024-01-01", domain.KindRevenue, "1"))
			s.NoError(err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		s.False(seen[id])
		seen[id] = true
	}
	s.Len(seen, writers)
}

func (s *SQLiteStoreTestSuite) TestImportSkipsDuplicates() {
	_, err := s.repo.SaveTransaction(s.ctx, newTxn("A", "2024-01-01", domain.KindRevenue, "1"))
	s.Require().NoError(err)

	result, err := s.repo.ImportTransactions(s.ctx, []domain.Transaction{
		newTxn("C", "2024-03-01", domain.KindRevenue, "10").WithID(1),
		newTxn("C", "2024-03-01", domain.KindRevenue, "10").WithID(5),
		newTxn("C", "2024-03-01", domain.KindRevenue, "10").WithID(5),
		newTxn("C", "2024-03-02", domain.KindCost, "3").WithID(0),
	})
	s.Require().NoError(err)
	s.Equal(domain.ImportResult{Imported: 2, Skipped: 2}, result)

	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{Company: "C"})
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.Equal(int64(5), txns[0].ID)
	s.Equal(int64(6), txns[1].ID)
}

func (s *SQLiteStoreTestSuite) TestImportInvalidWritesNothing() {
	_, err := s.repo.ImportTransactions(s.ctx, []domain.Transaction{
		newTxn("C", "2024-03-01", domain.KindRevenue, "10").WithID(3),
		{ID: 4, Company: "C", Date: "2024-03-01", Kind: "Lucro", Description: "x", Amount: decimal.NewFromInt(1)},
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Empty(txns)
}

func (s *SQLiteStoreTestSuite) TestSaveTrimsTextFields() {
	txn := newTxn(" A ", "2024-01-05", domain.KindRevenue, "10")
	txn.Description = "  venda  "
	_, err := s.repo.SaveTransaction(s.ctx, txn)
	s.Require().NoError(err)

	for _, company := range []string{"A", " A "} {
		txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{Company: company})
		s.Require().NoError(err)
		s.Require().Len(txns, 1)
		s.Equal("A", txns[0].Company)
		s.Equal("venda", txns[0].Description)
	}
}

func (s *SQLiteStoreTestSuite) TestImportRejectsIDBeyondMax() {
	_, err := s.repo.ImportTransactions(s.ctx, []domain.Transaction{
		newTxn("C", "2024-03-01", domain.KindRevenue, "10").WithID(math.MaxInt64),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Empty(txns)
}

func (s *SQLiteStoreTestSuite) TestSaveFailsWhenIDsExhausted() {
	_, err := s.repo.ImportTransactions(s.ctx, []domain.Transaction{
		newTxn("C", "2024-03-01", domain.KindRevenue, "10").WithID(domain.MaxTransactionID),
	})
	s.Require().NoError(err)

	_, err = s.repo.SaveTransaction(s.ctx, newTxn("C", "2024-03-02", domain.KindRevenue, "1"))
	var vErr *apperrors.ValidationError
	s.Require().ErrorAs(err, &vErr)
	s.Equal("id", vErr.Field)

	_, err = s.repo.ImportTransactions(s.ctx, []domain.Transaction{
		newTxn("C", "2024-03-02", domain.KindRevenue, "1").WithID(0),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	txns, err := s.repo.FindTransactions(s.ctx, domain.TransactionFilter{})
	s.Require().NoError(err)
	s.Len(txns, 1)
}
