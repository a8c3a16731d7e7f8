package handlers_test

import (
	"net/http"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestMalformedPathIDIsNotFound() {
	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/journal-entries/not-a-uuid"},
		{http.MethodDelete, "/api/v1/journal-entries/not-a-uuid"},
		{http.MethodGet, "/api/v1/accounts/abc"},
		{http.MethodDelete, "/api/v1/accounts/abc"},
		{http.MethodGet, "/api/v1/checks/abc"},
		{http.MethodPost, "/api/v1/checks/abc/clear"},
		{http.MethodPost, "/api/v1/checks/abc/reject"},
		{http.MethodDelete, "/api/v1/cash-boxes/abc"},
		{http.MethodDelete, "/api/v1/bank-accounts/abc"},
	}
	for _, r := range requests {
		w := suite.do(r.method, r.path, nil)
		suite.Equal(http.StatusNotFound, w.Code, "%s %s", r.method, r.path)
		suite.JSONEq(`{"error":"Not found"}`, w.Body.String())
	}

	suite.mockJournalService.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCheckService.AssertNotCalled(suite.T(), "ClearCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTreasuryService.AssertNotCalled(suite.T(), "DeactivateInstrument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestMalformedBodyIDIsBadRequest() {
	requests := []struct {
		path string
		body map[string]any
	}{
		{"/api/v1/journal-entries", map[string]any{
			"lines": []map[string]any{
				{"accountID": "not-a-uuid", "debit": "10"},
				{"accountID": "11111111-1111-4111-8111-111111111111", "credit": "10"},
			},
		}},
		{"/api/v1/journal-entries/automatic", map[string]any{
			"sourceType": "INVOICE", "sourceID": "inv-7", "accountID": "x", "amount": "10", "direction": "DEBIT",
		}},
		{"/api/v1/treasury/movements", map[string]any{"cashBoxID": "abc", "type": "INCOME", "amount": "10"}},
		{"/api/v1/checks", map[string]any{"checkNumber": "1", "amount": "10", "dueDate": "2026-11-15", "bankAccountID": "abc"}},
	}
	for _, r := range requests {
		w := suite.do(http.MethodPost, r.path, r.body)
		suite.Equal(http.StatusBadRequest, w.Code, r.path)
	}

	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateManualEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockTreasuryService.AssertNotCalled(suite.T(), "RecordMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockCheckService.AssertNotCalled(suite.T(), "CreateCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestMalformedQueryIDIsBadRequest() {
	for _, path := range []string{
		"/api/v1/journal-entries?accountID=abc",
		"/api/v1/treasury/movements?cashBoxID=abc",
		"/api/v1/treasury/movements?bankAccountID=abc",
	} {
		w := suite.do(http.MethodGet, path, nil)
		suite.Equal(http.StatusBadRequest, w.Code, path)
	}
}

func (suite *HandlerTestSuite) TestCreateAccount_MalformedParentIsInvalidParent() {
	suite.mockAccountService.On("CreateAccount", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.ParentAccountID != nil && *r.ParentAccountID == "x"
		}),
		testUserID,
	).Return(nil, apperrors.ErrInvalidParent).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":            "1.1.05",
		"name":            "Caja chica",
		"accountType":     "ASSET",
		"parentAccountID": "x",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "parent account not found")
}
