package dto

import (
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineResponse is one line of a journal entry.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse is a journal entry header with optional lines.
type EntryResponse struct {
	EntryID          string             `json:"entryID"`
	EntryNo          string             `json:"entryNo"`
	CompanyID        string             `json:"companyID"`
	BranchID         string             `json:"branchID,omitempty"`
	EntryDate        time.Time          `json:"entryDate"`
	Description      string             `json:"description,omitempty"`
	ReferenceType    string             `json:"referenceType"`
	ReferenceID      string             `json:"referenceID,omitempty"`
	CounterpartID    string             `json:"counterpartID,omitempty"`
	Amount           decimal.Decimal    `json:"amount"`
	Voided           bool               `json:"voided"`
	OriginalEntryID  *string            `json:"originalEntryID,omitempty"`
	ReversingEntryID *string            `json:"reversingEntryID,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	CreatedBy        string             `json:"createdBy"`
	Lines            []EntryLineResponse `json:"lines,omitempty"`
}

// ToEntryLineResponse converts one domain line to its DTO.
func ToEntryLineResponse(l domain.JournalEntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      l.LineID,
		AccountID:   l.AccountID,
		Debit:       l.Debit.Decimal(),
		Credit:      l.Credit.Decimal(),
		Description: l.Description,
	}
}

// ToEntryResponse converts a domain entry (with whatever lines are
// loaded) to its DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:          e.EntryID,
		EntryNo:          e.EntryNo,
		CompanyID:        e.CompanyID,
		BranchID:         e.BranchID,
		EntryDate:        e.EntryDate,
		Description:      e.Description,
		ReferenceType:    string(e.ReferenceType),
		ReferenceID:      e.ReferenceID,
		CounterpartID:    e.CounterpartID,
		Amount:           e.Amount.Decimal(),
		Voided:           e.Voided,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(l)
		}
	}
	return resp
}

// ListEntriesParams are the day-book query parameters.
type ListEntriesParams struct {
	From      string  `form:"from"`
	To        string  `form:"to"`
	BranchID  string  `form:"branchID"`
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
