package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateCheck() {
	suite.mockCheckService.On("CreateCheck", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.CreateCheckRequest) bool {
			return r.CheckNumber == "00012345" && r.IsReceived && r.BankAccountID == "cccccccc-0000-4000-8000-000000000001" &&
				r.DueDate.Equal(time.Date(2026, 11, 15, 0, 0, 0, 0, time.UTC))
		}),
		testUserID,
	).Return(&domain.Check{CheckID: "dddddddd-0000-4000-8000-000000000001", CheckNumber: "00012345", Status: domain.CheckPending}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks", map[string]any{
		"checkNumber":   "00012345",
		"amount":        "25000",
		"dueDate":       "2026-11-15",
		"isReceived":    true,
		"bankAccountID": "cccccccc-0000-4000-8000-000000000001",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var check domain.Check
	suite.decode(w, &check)
	suite.Equal(domain.CheckPending, check.Status)
}

func (suite *HandlerTestSuite) TestCreateCheck_DuplicateNumber() {
	suite.mockCheckService.On("CreateCheck", mockCtx, testOrgID, mock.Anything, testUserID).
		Return(nil, apperrors.ErrDuplicateCheckNumber).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks", map[string]any{
		"checkNumber": "00012345",
		"amount":      "25000",
		"dueDate":     "2026-11-15",
		"cashBoxID":   "bbbbbbbb-0000-4000-8000-000000000001",
	})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestClearCheck() {
	cleared := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	suite.mockCheckService.On("ClearCheck", mockCtx, testOrgID, "dddddddd-0000-4000-8000-000000000001", testUserID).
		Return(&domain.Check{CheckID: "dddddddd-0000-4000-8000-000000000001", Status: domain.CheckCleared, ClearedAt: &cleared, Amount: decimal.NewFromInt(500)}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/dddddddd-0000-4000-8000-000000000001/clear", nil)

	suite.Equal(http.StatusOK, w.Code)
	var check domain.Check
	suite.decode(w, &check)
	suite.Equal(domain.CheckCleared, check.Status)
}

func (suite *HandlerTestSuite) TestClearCheck_AlreadyCleared() {
	suite.mockCheckService.On("ClearCheck", mockCtx, testOrgID, "dddddddd-0000-4000-8000-000000000001", testUserID).
		Return(nil, apperrors.ErrCheckAlreadyCleared).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/dddddddd-0000-4000-8000-000000000001/clear", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), "already cleared")
}

func (suite *HandlerTestSuite) TestClearCheck_ReadOnlyForbidden() {
	w := suite.doAs(domain.RoleReadOnly, http.MethodPost, "/api/v1/checks/dddddddd-0000-4000-8000-000000000001/clear", nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCheckService.AssertNotCalled(suite.T(), "ClearCheck")
}

func (suite *HandlerTestSuite) TestRejectCheck() {
	suite.mockCheckService.On("RejectCheck", mockCtx, testOrgID, "dddddddd-0000-4000-8000-000000000002", testUserID).
		Return(&domain.Check{CheckID: "dddddddd-0000-4000-8000-000000000002", Status: domain.CheckRejected}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/dddddddd-0000-4000-8000-000000000002/reject", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListChecks_Filter() {
	suite.mockCheckService.On("ListChecks", mockCtx, testOrgID,
		mock.MatchedBy(func(f domain.CheckFilter) bool {
			return f.Status != nil && *f.Status == domain.CheckPending &&
				f.DueBefore != nil && f.DueBefore.Equal(time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC))
		}),
	).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/checks?status=PENDING&dueBefore=2026-10-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestListChecks_InvalidStatus() {
	w := suite.do(http.MethodGet, "/api/v1/checks?status=BOUNCED", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestProcessDueChecks_DefaultsToNow() {
	before := time.Now()
	report := &domain.DueCheckReport{
		AsOf:      time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Processed: []domain.Check{{CheckID: "dddddddd-0000-4000-8000-000000000001"}, {CheckID: "dddddddd-0000-4000-8000-000000000002"}},
	}
	suite.mockCheckService.On("ProcessDueChecks", mockCtx, testOrgID,
		mock.MatchedBy(func(asOf time.Time) bool { return !asOf.Before(before) && asOf.Location() == time.UTC }),
		testUserID,
	).Return(report, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/process-due", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProcessDueChecksResponse
	suite.decode(w, &resp)
	suite.Equal(2, resp.Count)
	suite.NotNil(resp.Failed)
	suite.Empty(resp.Failed)
}

func (suite *HandlerTestSuite) TestProcessDueChecks_InterruptedReturnsPartialReport() {
	report := &domain.DueCheckReport{
		AsOf:      time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Processed: []domain.Check{{CheckID: "dddddddd-0000-4000-8000-000000000001", Status: domain.CheckCleared}},
		Failed:    []domain.CheckFailure{},
	}
	suite.mockCheckService.On("ProcessDueChecks", mockCtx, testOrgID, mock.AnythingOfType("time.Time"), testUserID).
		Return(report, context.DeadlineExceeded).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/process-due", nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	var resp dto.ProcessDueChecksResponse
	suite.decode(w, &resp)
	suite.Equal(1, resp.Count)
	suite.Require().Len(resp.Processed, 1)
	suite.Equal("dddddddd-0000-4000-8000-000000000001", resp.Processed[0].CheckID)
	suite.Equal("sweep interrupted", resp.Error)
}

func (suite *HandlerTestSuite) TestProcessDueChecks_ListFailureIsInternalError() {
	suite.mockCheckService.On("ProcessDueChecks", mockCtx, testOrgID, mock.AnythingOfType("time.Time"), testUserID).
		Return(nil, errors.New("connection reset")).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/process-due", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestProcessDueChecks_ExplicitDate() {
	asOf := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	suite.mockCheckService.On("ProcessDueChecks", mockCtx, testOrgID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) }),
		testUserID,
	).Return(&domain.DueCheckReport{AsOf: asOf}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checks/process-due", map[string]any{"asOf": "2026-10-01"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProcessDueChecksResponse
	suite.decode(w, &resp)
	suite.Equal(0, resp.Count)
	suite.Equal("2026-10-01", resp.AsOf.Format("2006-01-02"))
}
