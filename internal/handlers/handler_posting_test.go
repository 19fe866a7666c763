package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/core/services"
	"github.com/ThreadBooks/thread_books_app/internal/dto"
	"github.com/ThreadBooks/thread_books_app/internal/handlers"
	"github.com/ThreadBooks/thread_books_app/internal/platform/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Post(ctx context.Context, event domain.PostingEvent, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, event, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryBySource(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntryByNo(ctx context.Context, companyID string, entryNo string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) VoidEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type PostingHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	companyID         string
	userID            string
}

func (suite *PostingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockLedgerService = new(MockLedgerService)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	handlers.RegisterRoutes(suite.router, &config.Config{}, &portssvc.ServiceContainer{
		Ledger: suite.mockLedgerService,
	})
}

func (suite *PostingHandlerTestSuite) doRequest(method, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", suite.userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PostingHandlerTestSuite) TestPostTransfer_Success() {
	fromID := uuid.NewString()
	toID := uuid.NewString()

	posted := &domain.JournalEntry{
		EntryID:       uuid.NewString(),
		CompanyID:     suite.companyID,
		EntryNo:       "JE-0001",
		EntrySeries:   domain.SeriesJournal,
		EntrySeq:      1,
		EntryDate:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		ReferenceType: domain.RefTransfer,
		Amount:        50000,
	}

	suite.mockLedgerService.On("Post",
		mock.Anything,
		mock.MatchedBy(func(event domain.PostingEvent) bool {
			transfer, ok := event.(domain.TransferEvent)
			return ok &&
				transfer.CompanyID == suite.companyID &&
				transfer.FromAccountID == fromID &&
				transfer.ToAccountID == toID &&
				transfer.Amount == domain.Money(50000)
		}),
		suite.userID,
	).Return(posted, nil).Once()

	body := fmt.Sprintf(`{"date":"2024-03-10T00:00:00Z","amount":"500.00","fromAccountID":%q,"toAccountID":%q}`, fromID, toID)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/transfers", suite.companyID), body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-0001", resp.EntryNo)
	suite.Equal(string(domain.RefTransfer), resp.ReferenceType)
	suite.Equal("500", resp.Amount.String())

	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestPostTransfer_DateOnlyPayload() {
	fromID := uuid.NewString()
	toID := uuid.NewString()

	suite.mockLedgerService.On("Post",
		mock.Anything,
		mock.MatchedBy(func(event domain.PostingEvent) bool {
			transfer, ok := event.(domain.TransferEvent)
			return ok && transfer.Date.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
		}),
		suite.userID,
	).Return(&domain.JournalEntry{EntryNo: "JE-0002", EntrySeries: domain.SeriesJournal}, nil).Once()

	body := fmt.Sprintf(`{"date":"2024-03-10","amount":"500.00","fromAccountID":%q,"toAccountID":%q}`, fromID, toID)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/transfers", suite.companyID), body)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *PostingHandlerTestSuite) TestPostTransfer_MissingCallerHeader() {
	req, _ := http.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/v1/companies/%s/postings/transfers", suite.companyID),
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestPostTransfer_InvalidBody() {
	body := `{"date":"2024-03-10T00:00:00Z","amount":"500.00"}` // account IDs missing
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/transfers", suite.companyID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestPostTransfer_RejectsSubPaisaAmount() {
	body := fmt.Sprintf(`{"date":"2024-03-10T00:00:00Z","amount":"500.001","fromAccountID":%q,"toAccountID":%q}`,
		uuid.NewString(), uuid.NewString())
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/transfers", suite.companyID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestPostSupplierPayment_DuplicateReference() {
	suite.mockLedgerService.On("Post", mock.Anything, mock.Anything, suite.userID).
		Return(nil, fmt.Errorf("%w: supplier_payment pay-12", apperrors.ErrDuplicate)).Once()

	body := fmt.Sprintf(`{"date":"2024-03-10T00:00:00Z","amount":"120.00","referenceID":"pay-12","counterpartID":"supplier-3","paymentAccountID":%q}`, uuid.NewString())
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/supplier-payments", suite.companyID), body)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *PostingHandlerTestSuite) TestPostManualJournal_ValidationErrorFromService() {
	suite.mockLedgerService.On("Post", mock.Anything, mock.Anything, suite.userID).
		Return(nil, services.ErrSameAccount).Once()

	accountID := uuid.NewString()
	body := fmt.Sprintf(`{"date":"2024-03-10T00:00:00Z","amount":"10.00","debitAccountID":%q,"creditAccountID":%q}`, accountID, accountID)
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/manual-journals", suite.companyID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestPostManualJournal_CrossCompanyAccount() {
	suite.mockLedgerService.On("Post", mock.Anything, mock.Anything, suite.userID).
		Return(nil, services.ErrCompanyMismatch).Once()

	body := fmt.Sprintf(`{"date":"2024-03-10T00:00:00Z","amount":"10.00","debitAccountID":%q,"creditAccountID":%q}`, uuid.NewString(), uuid.NewString())
	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/postings/manual-journals", suite.companyID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockLedgerService.On("GetEntry", mock.Anything, suite.companyID, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/entries/%s", suite.companyID, entryID), "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PostingHandlerTestSuite) TestGetEntryBySource_Success() {
	entry := &domain.JournalEntry{
		EntryID:       uuid.NewString(),
		CompanyID:     suite.companyID,
		EntryNo:       "JE-0009",
		ReferenceType: domain.RefSale,
		ReferenceID:   "sale-41",
		Amount:        15000,
	}

	suite.mockLedgerService.On("GetEntryBySource", mock.Anything, suite.companyID, domain.RefSale, "sale-41").
		Return(entry, nil).Once()

	w := suite.doRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/entries?referenceType=sale&referenceID=sale-41", suite.companyID), "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-0009", resp.EntryNo)
	suite.Equal("sale-41", resp.ReferenceID)
}

func (suite *PostingHandlerTestSuite) TestGetEntryBySource_MissingParams() {
	w := suite.doRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/entries?referenceType=sale", suite.companyID), "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "GetEntryBySource",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingHandlerTestSuite) TestGetEntryByNo_Success() {
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		EntryNo:     "JE-0007",
		EntrySeries: domain.SeriesJournal,
		EntrySeq:    7,
		Amount:      20000,
	}

	suite.mockLedgerService.On("GetEntryByNo", mock.Anything, suite.companyID, "JE-0007").
		Return(entry, nil).Once()

	w := suite.doRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/entries?entryNo=JE-0007", suite.companyID), "")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("JE-0007", resp.EntryNo)
}

func (suite *PostingHandlerTestSuite) TestGetEntryByNo_Malformed() {
	suite.mockLedgerService.On("GetEntryByNo", mock.Anything, suite.companyID, "JE-").
		Return(nil, services.ErrInvalidEntryNo).Once()

	w := suite.doRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/entries?entryNo=JE-", suite.companyID), "")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PostingHandlerTestSuite) TestVoidEntry_Success() {
	entryID := uuid.NewString()
	reversing := &domain.JournalEntry{
		EntryID:         uuid.NewString(),
		CompanyID:       suite.companyID,
		EntryNo:         "JE-0002",
		ReferenceType:   domain.ReferenceVoid,
		OriginalEntryID: &entryID,
		Amount:          30000,
	}

	suite.mockLedgerService.On("VoidEntry", mock.Anything, suite.companyID, entryID, suite.userID).
		Return(reversing, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/entries/%s/void", suite.companyID, entryID), "")

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.ReferenceVoid), resp.ReferenceType)
	suite.Require().NotNil(resp.OriginalEntryID)
	suite.Equal(entryID, *resp.OriginalEntryID)
}

func (suite *PostingHandlerTestSuite) TestVoidEntry_AlreadyVoided() {
	entryID := uuid.NewString()

	suite.mockLedgerService.On("VoidEntry", mock.Anything, suite.companyID, entryID, suite.userID).
		Return(nil, fmt.Errorf("%w: %s", services.ErrEntryVoided, entryID)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/entries/%s/void", suite.companyID, entryID), "")

	suite.Equal(http.StatusConflict, w.Code)
}

// --- Run Test Suite ---
func TestPostingHandler(t *testing.T) {
	suite.Run(t, new(PostingHandlerTestSuite))
}
