package services_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Gabriel4210/DRE/internal/apperrors"
	"github.com/Gabriel4210/DRE/internal/core/domain"
	portssvc "github.com/Gabriel4210/DRE/internal/core/ports/services"
	"github.com/Gabriel4210/DRE/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.NewTransaction) (int64, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListCompanies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) ImportTransactions(ctx context.Context, txns []domain.Transaction) (domain.ImportResult, error) {
	args := m.Called(ctx, txns)
	return args.Get(0).(domain.ImportResult), args.Error(1)
}

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func sampleNew() domain.NewTransaction {
	return domain.NewTransaction{
		Company:     "ACME",
		Date:        "2024-01-05",
		Kind:        domain.KindRevenue,
		Description: "Vendas",
		Amount:      decimal.NewFromInt(1000),
	}
}

func (suite *TransactionServiceTestSuite) TestAddTransaction_Success() {
	n := sampleNew()
	suite.mockRepo.On("SaveTransaction", suite.ctx, n).Return(int64(7), nil).Once()

	txn, err := suite.service.AddTransaction(suite.ctx, n)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(int64(7), txn.ID)
	suite.Equal("ACME", txn.Company)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestAddTransaction_TrimsTextBeforeSaving() {
	padded := sampleNew()
	padded.Company = " ACME "
	padded.Description = "Vendas\t"
	suite.mockRepo.On("SaveTransaction", suite.ctx, sampleNew()).Return(int64(3), nil).Once()

	txn, err := suite.service.AddTransaction(suite.ctx, padded)

	suite.Require().NoError(err)
	suite.Equal("ACME", txn.Company)
	suite.Equal("Vendas", txn.Description)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestAddTransaction_ValidationErrorPropagates() {
	n := sampleNew()
	n.Amount = decimal.Zero
	suite.mockRepo.On("SaveTransaction", suite.ctx, n).
		Return(int64(0), apperrors.NewValidationError("valor", "must be greater than zero")).Once()

	txn, err := suite.service.AddTransaction(suite.ctx, n)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_SortsByDate() {
	filter := domain.TransactionFilter{Company: "ACME"}
	stored := []domain.Transaction{
		{ID: 1, Date: "2024-02-01"},
		{ID: 2, Date: "2024-01-05"},
		{ID: 3, Date: "2024-02-01"},
	}
	suite.mockRepo.On("FindTransactions", suite.ctx, filter).Return(stored, nil).Once()

	txns, err := suite.service.ListTransactions(suite.ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(txns, 3)
	suite.Equal([]int64{2, 1, 3}, []int64{txns[0].ID, txns[1].ID, txns[2].ID})
}

func (suite *TransactionServiceTestSuite) TestListTransactions_SameDateOrderedByID() {
	stored := []domain.Transaction{
		{ID: 9, Date: "2024-01-05"},
		{ID: 4, Date: "2024-01-05"},
	}
	suite.mockRepo.On("FindTransactions", suite.ctx, domain.TransactionFilter{}).Return(stored, nil).Once()

	txns, err := suite.service.ListTransactions(suite.ctx, domain.TransactionFilter{})

	suite.Require().NoError(err)
	suite.Equal([]int64{4, 9}, []int64{txns[0].ID, txns[1].ID})
}

func (suite *TransactionServiceTestSuite) pagedLog() []domain.Transaction {
	return []domain.Transaction{
		{ID: 1, Date: "2024-01-01"},
		{ID: 2, Date: "2024-01-02"},
		{ID: 3, Date: "2024-01-02"},
		{ID: 4, Date: "2024-01-03"},
		{ID: 5, Date: "2024-01-04"},
	}
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPage_WalksAllPages() {
	suite.mockRepo.On("FindTransactions", suite.ctx, domain.TransactionFilter{}).Return(suite.pagedLog(), nil).Times(3)

	var seen []int64
	var token *string
	for range 3 {
		page, next, err := suite.service.ListTransactionsPage(suite.ctx, domain.TransactionFilter{}, 2, token)
		suite.Require().NoError(err)
		for _, txn := range page {
			seen = append(seen, txn.ID)
		}
		token = next
	}

	suite.Equal([]int64{1, 2, 3, 4, 5}, seen)
	suite.Nil(token, "Last page should not carry a token")
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPage_NoLimitReturnsAll() {
	suite.mockRepo.On("FindTransactions", suite.ctx, domain.TransactionFilter{}).Return(suite.pagedLog(), nil).Once()

	page, next, err := suite.service.ListTransactionsPage(suite.ctx, domain.TransactionFilter{}, 0, nil)

	suite.Require().NoError(err)
	suite.Len(page, 5)
	suite.Nil(next)
}

func (suite *TransactionServiceTestSuite) TestListTransactionsPage_InvalidToken() {
	bad := "not a token!"

	page, next, err := suite.service.ListTransactionsPage(suite.ctx, domain.TransactionFilter{}, 2, &bad)

	suite.Nil(page)
	suite.Nil(next)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DataError() {
	dataErr := apperrors.NewDataError("ledger.csv", 4, "invalid transaction", nil)
	suite.mockRepo.On("FindTransactions", suite.ctx, domain.TransactionFilter{}).Return(nil, dataErr).Once()

	txns, err := suite.service.ListTransactions(suite.ctx, domain.TransactionFilter{})

	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrData)
}

func (suite *TransactionServiceTestSuite) TestListCompanies() {
	suite.mockRepo.On("ListCompanies", suite.ctx).Return([]string{"A", "B"}, nil).Once()

	companies, err := suite.service.ListCompanies(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal([]string{"A", "B"}, companies)
}

func (suite *TransactionServiceTestSuite) TestImportTransactions_Success() {
	file := "id,empresa,data,tipo,descricao,valor\n10,A,2024-01-01,Receita,Vendas,100\n,A,2024-01-02,Custo,Frete,5\n"
	suite.mockRepo.On("ImportTransactions", suite.ctx, mock.MatchedBy(func(txns []domain.Transaction) bool {
		return len(txns) == 2 && txns[0].ID == 10 && txns[1].ID == 0 && txns[1].Kind == domain.KindCost
	})).Return(domain.ImportResult{Imported: 2}, nil).Once()

	result, err := suite.service.ImportTransactions(suite.ctx, strings.NewReader(file))

	suite.Require().NoError(err)
	suite.Equal(2, result.Imported)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestImportTransactions_MissingColumnNeverReachesStore() {
	file := "id,empresa,data,tipo,descricao\n10,A,2024-01-01,Receita,Vendas\n"

	_, err := suite.service.ImportTransactions(suite.ctx, strings.NewReader(file))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ImportTransactions", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestExportTransactions() {
	filter := domain.TransactionFilter{Company: "A"}
	stored := []domain.Transaction{
		{ID: 1, Company: "A", Date: "2024-01-01", Kind: domain.KindRevenue, Description: "Vendas", Amount: decimal.RequireFromString("10.5")},
	}
	suite.mockRepo.On("FindTransactions", suite.ctx, filter).Return(stored, nil).Once()

	var buf bytes.Buffer
	n, err := suite.service.ExportTransactions(suite.ctx, &buf, filter)

	suite.Require().NoError(err)
	suite.Equal(1, n)
	suite.Equal("id,empresa,data,tipo,descricao,valor\n1,A,2024-01-01,Receita,Vendas,10.5\n", buf.String())
}

func (suite *TransactionServiceTestSuite) TestExportTransactions_RepoError() {
	suite.mockRepo.On("FindTransactions", suite.ctx, domain.TransactionFilter{}).Return(nil, errors.New("boom")).Once()

	var buf bytes.Buffer
	_, err := suite.service.ExportTransactions(suite.ctx, &buf, domain.TransactionFilter{})

	suite.Error(err)
	suite.Empty(buf.String())
}
