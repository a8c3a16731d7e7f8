package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/SscSPs/buildledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func manualEntryBody() map[string]any {
	return map[string]any{
		"entryDate": "2026-10-01",
		"lines": []map[string]any{
			{"accountID": "11111111-1111-4111-8111-111111111111", "debit": "1500.00"},
			{"accountID": "22222222-2222-4222-8222-222222222222", "credit": "1500.00"},
		},
	}
}

func (suite *HandlerTestSuite) TestCreateManualEntry_Success() {
	lines := []domain.JournalEntry{
		{EntryID: "aaaaaaaa-0000-4000-8000-000000000001", EntryNumber: "J-000001", AccountID: "11111111-1111-4111-8111-111111111111", Debit: decimal.NewFromInt(1500), Credit: decimal.Zero},
		{EntryID: "aaaaaaaa-0000-4000-8000-000000000002", EntryNumber: "J-000001", AccountID: "22222222-2222-4222-8222-222222222222", Debit: decimal.Zero, Credit: decimal.NewFromInt(1500)},
	}
	suite.mockJournalService.On("CreateManualEntry", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.CreateManualEntryRequest) bool {
			return len(r.Lines) == 2 &&
				r.Lines[0].Debit.Equal(decimal.NewFromInt(1500)) &&
				r.EntryDate.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
		}),
		testUserID,
	).Return(lines, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", manualEntryBody())

	suite.Equal(http.StatusCreated, w.Code)
	var resp []dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.Len(resp, 2)
	suite.Equal("J-000001", resp[1].EntryNumber)
}

func (suite *HandlerTestSuite) TestCreateManualEntry_SingleLineRejectedByBinding() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries", map[string]any{
		"lines": []map[string]any{{"accountID": "11111111-1111-4111-8111-111111111111", "debit": "10"}},
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateManualEntry")
}

func (suite *HandlerTestSuite) TestCreateManualEntry_Unbalanced() {
	suite.mockJournalService.On("CreateManualEntry", mockCtx, testOrgID, mock.Anything, testUserID).
		Return(nil, apperrors.ErrUnbalancedEntry).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", manualEntryBody())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "do not balance")
}

func (suite *HandlerTestSuite) TestCreateManualEntry_DuplicateNumber() {
	suite.mockJournalService.On("CreateManualEntry", mockCtx, testOrgID, mock.Anything, testUserID).
		Return(nil, apperrors.ErrDuplicateEntryNumber).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", manualEntryBody())

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAutomaticEntry() {
	entry := &domain.JournalEntry{
		EntryID:     "aaaaaaaa-0000-4000-8000-000000000009",
		EntryNumber: "INVOICE:inv-7",
		AccountID:   "33333333-3333-4333-8333-333333333333",
		Debit:       decimal.NewFromInt(800),
		Credit:      decimal.Zero,
		IsAutomatic: true,
		SourceType:  "INVOICE",
		SourceID:    "inv-7",
	}
	suite.mockJournalService.On("CreateAutomaticEntry", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.CreateAutomaticEntryRequest) bool {
			return r.SourceType == "INVOICE" && r.Direction == domain.Debit
		}),
		testUserID,
	).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/automatic", map[string]any{
		"sourceType": "INVOICE",
		"sourceID":   "inv-7",
		"accountID":  "33333333-3333-4333-8333-333333333333",
		"amount":     "800",
		"direction":  "DEBIT",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.decode(w, &resp)
	suite.True(resp.IsAutomatic)
	suite.Equal("inv-7", resp.SourceID)
}

func (suite *HandlerTestSuite) TestListEntries_FullPageReturnsNextToken() {
	suite.mockJournalService.On("ListEntries", mockCtx, testOrgID,
		mock.MatchedBy(func(f domain.JournalEntryFilter) bool {
			return f.AccountID == "11111111-1111-4111-8111-111111111111" && f.Limit == 2 && f.Offset == 0 &&
				f.From != nil && f.From.Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)) && f.To == nil
		}),
	).Return([]domain.JournalEntry{{EntryID: "aaaaaaaa-0000-4000-8000-000000000001"}, {EntryID: "aaaaaaaa-0000-4000-8000-000000000002"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?accountID=11111111-1111-4111-8111-111111111111&from=2026-09-01&limit=2", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	suite.decode(w, &resp)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	offset, err := pagination.DecodeOffsetToken(*resp.NextToken)
	suite.NoError(err)
	suite.Equal(2, offset)
}

func (suite *HandlerTestSuite) TestListEntries_InvalidParams() {
	for _, query := range []string{"limit=zero", "nextToken=bm9wZQ", "from=yesterday"} {
		w := suite.do(http.MethodGet, "/api/v1/journal-entries?"+query, nil)
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries")
}

func (suite *HandlerTestSuite) TestDeleteEntry() {
	suite.mockJournalService.On("DeleteEntry", mockCtx, testOrgID, "aaaaaaaa-0000-4000-8000-000000000001").Return(int64(2), nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/aaaaaaaa-0000-4000-8000-000000000001", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DeletedResponse
	suite.decode(w, &resp)
	suite.Equal(int64(2), resp.Deleted)
}

func (suite *HandlerTestSuite) TestDeleteEntry_NotFound() {
	suite.mockJournalService.On("DeleteEntry", mockCtx, testOrgID, "aaaaaaaa-0000-4000-8000-000000000404").Return(int64(0), apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/aaaaaaaa-0000-4000-8000-000000000404", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
