package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockEntryRepo     *MockEntryRepository
	mockAccountSvc    *MockAccountService
	service           portssvc.ReportingSvcFacade
	companyID         string
	from              time.Time
	to                time.Time
	ctx               context.Context
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockReportingRepo = new(MockReportingRepository)
	s.mockEntryRepo = new(MockEntryRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.service = services.NewReportingService(s.mockReportingRepo, s.mockEntryRepo, s.mockAccountSvc)
	s.companyID = uuid.NewString()
	s.from = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.to = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	s.ctx = context.Background()
}

func (s *ReportingServiceTestSuite) roleAccount(accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		AccountType: accountType,
		IsActive:    true,
	}
}

func (s *ReportingServiceTestSuite) TestNetProfit() {
	s.mockReportingRepo.On("GetTypeTotals", s.ctx, s.companyID, s.from, s.to).
		Return(domain.Money(250000), domain.Money(90000), nil).Once()

	net, err := s.service.NetProfit(s.ctx, s.companyID, s.from, s.to)

	s.Require().NoError(err)
	s.Equal(domain.Money(160000), net)
}

func (s *ReportingServiceTestSuite) TestRunningBalanceScopedToCompany() {
	accountID := uuid.NewString()

	s.mockAccountSvc.On("GetAccountByID", s.ctx, s.companyID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	balance, err := s.service.RunningBalance(s.ctx, s.companyID, accountID, time.Time{})

	s.Equal(domain.Money(0), balance)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockReportingRepo.AssertNotCalled(s.T(), "GetAccountBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReportingServiceTestSuite) TestRunningBalance() {
	account := &domain.Account{AccountID: uuid.NewString(), CompanyID: s.companyID, IsActive: true}

	s.mockAccountSvc.On("GetAccountByID", s.ctx, s.companyID, account.AccountID).
		Return(account, nil).Once()
	s.mockReportingRepo.On("GetAccountBalance", s.ctx, s.companyID, account.AccountID, s.to).
		Return(domain.Money(47500), nil).Once()

	balance, err := s.service.RunningBalance(s.ctx, s.companyID, account.AccountID, s.to)

	s.Require().NoError(err)
	s.Equal(domain.Money(47500), balance)
}

func (s *ReportingServiceTestSuite) TestSummaryAggregatesCards() {
	receivable := s.roleAccount(domain.Asset)
	payable := s.roleAccount(domain.Liability)

	s.mockReportingRepo.On("GetTypeTotals", s.ctx, s.companyID, s.from, s.to).
		Return(domain.Money(500000), domain.Money(180000), nil).Once()
	s.mockAccountSvc.On("ResolveRoleAccount", s.ctx, s.companyID, domain.RoleAccountsReceivable).
		Return(receivable, nil).Once()
	s.mockReportingRepo.On("GetCounterpartOutstanding", s.ctx, s.companyID, *receivable).
		Return([]domain.CounterpartOutstanding{
			{CounterpartID: "customer-1", Outstanding: 20000},
			{CounterpartID: "customer-2", Outstanding: 15000},
		}, nil).Once()
	s.mockAccountSvc.On("ResolveRoleAccount", s.ctx, s.companyID, domain.RoleAccountsPayable).
		Return(payable, nil).Once()
	s.mockReportingRepo.On("GetCounterpartOutstanding", s.ctx, s.companyID, *payable).
		Return([]domain.CounterpartOutstanding{
			{CounterpartID: "supplier-1", Outstanding: 40000},
		}, nil).Once()
	s.mockReportingRepo.On("GetBalancesByClass", s.ctx, s.companyID, domain.ClassCash).
		Return([]domain.AccountBalance{{Balance: 90000}}, nil).Once()
	s.mockReportingRepo.On("GetBalancesByClass", s.ctx, s.companyID, domain.ClassBank).
		Return([]domain.AccountBalance{{Balance: 210000}, {Balance: 5000}}, nil).Once()

	summary, err := s.service.Summary(s.ctx, s.companyID, s.from, s.to)

	s.Require().NoError(err)
	s.Equal(domain.Money(500000), summary.TotalIncome)
	s.Equal(domain.Money(180000), summary.TotalExpense)
	s.Equal(domain.Money(320000), summary.NetProfit)
	s.Equal(domain.Money(35000), summary.Receivables)
	s.Equal(domain.Money(40000), summary.Payables)
	s.Equal(domain.Money(90000), summary.CashBalance)
	s.Equal(domain.Money(215000), summary.BankBalance)
}

func (s *ReportingServiceTestSuite) TestSummaryToleratesUnboundRoles() {
	// A company that never ran the default setup still gets a dashboard
	// with zero receivable/payable cards.
	s.mockReportingRepo.On("GetTypeTotals", s.ctx, s.companyID, s.from, s.to).
		Return(domain.Money(100000), domain.Money(60000), nil).Once()
	s.mockAccountSvc.On("ResolveRoleAccount", s.ctx, s.companyID, domain.RoleAccountsReceivable).
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockAccountSvc.On("ResolveRoleAccount", s.ctx, s.companyID, domain.RoleAccountsPayable).
		Return(nil, apperrors.ErrNotFound).Once()
	s.mockReportingRepo.On("GetBalancesByClass", s.ctx, s.companyID, mock.Anything).
		Return([]domain.AccountBalance{}, nil).Twice()

	summary, err := s.service.Summary(s.ctx, s.companyID, s.from, s.to)

	s.Require().NoError(err)
	s.Equal(domain.Money(0), summary.Receivables)
	s.Equal(domain.Money(0), summary.Payables)
	s.Equal(domain.Money(40000), summary.NetProfit)
}

func (s *ReportingServiceTestSuite) TestReceivablesResolvesRoleAccount() {
	receivable := s.roleAccount(domain.Asset)

	s.mockAccountSvc.On("ResolveRoleAccount", s.ctx, s.companyID, domain.RoleAccountsReceivable).
		Return(receivable, nil).Once()
	s.mockReportingRepo.On("GetCounterpartOutstanding", s.ctx, s.companyID, *receivable).
		Return([]domain.CounterpartOutstanding{{CounterpartID: "customer-7", Outstanding: 12500}}, nil).Once()

	rows, err := s.service.Receivables(s.ctx, s.companyID)

	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("customer-7", rows[0].CounterpartID)
	s.Equal(domain.Money(12500), rows[0].Outstanding)
}

func (s *ReportingServiceTestSuite) TestDayBookAttachesLines() {
	entryA := domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: s.companyID, EntryNo: "JE-0001"}
	entryB := domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: s.companyID, EntryNo: "JE-0002"}
	linesMap := map[string][]domain.JournalEntryLine{
		entryA.EntryID: {{LineID: uuid.NewString(), EntryID: entryA.EntryID, Debit: 1000}, {LineID: uuid.NewString(), EntryID: entryA.EntryID, Credit: 1000}},
		entryB.EntryID: {{LineID: uuid.NewString(), EntryID: entryB.EntryID, Debit: 500}, {LineID: uuid.NewString(), EntryID: entryB.EntryID, Credit: 500}},
	}

	s.mockEntryRepo.On("ListEntries", s.ctx, s.companyID, "", s.from, s.to, 50, (*string)(nil)).
		Return([]domain.JournalEntry{entryA, entryB}, nil, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryIDs", s.ctx, []string{entryA.EntryID, entryB.EntryID}).
		Return(linesMap, nil).Once()

	entries, next, err := s.service.DayBook(s.ctx, s.companyID, "", s.from, s.to, 0, nil)

	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(entries, 2)
	s.Len(entries[0].Lines, 2)
	s.Len(entries[1].Lines, 2)
}

func (s *ReportingServiceTestSuite) TestDayBookDegradesWithoutLines() {
	entry := domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: s.companyID, EntryNo: "JE-0003"}

	s.mockEntryRepo.On("ListEntries", s.ctx, s.companyID, "", s.from, s.to, 50, (*string)(nil)).
		Return([]domain.JournalEntry{entry}, nil, nil).Once()
	s.mockEntryRepo.On("FindLinesByEntryIDs", s.ctx, mock.Anything).
		Return(nil, apperrors.ErrInternal).Once()

	entries, _, err := s.service.DayBook(s.ctx, s.companyID, "", s.from, s.to, 0, nil)

	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Empty(entries[0].Lines)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
