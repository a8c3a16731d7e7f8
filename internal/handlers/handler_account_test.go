package handlers_test

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	expected := &domain.Account{
		AccountID:      "44444444-4444-4444-8444-444444444444",
		OrganizationID: testOrgID,
		Code:           "1.1.01",
		Name:           "Caja",
		AccountType:    domain.Asset,
		CurrencyCode:   domain.CurrencyPesos,
		IsActive:       true,
	}
	suite.mockAccountService.On("CreateAccount", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == "1.1.01" && r.AccountType == domain.Asset
		}),
		testUserID,
	).Return(expected, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":        "1.1.01",
		"name":        "Caja",
		"accountType": "ASSET",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal("44444444-4444-4444-8444-444444444444", resp.AccountID)
	suite.Equal(domain.CurrencyPesos, resp.CurrencyCode)
}

func (suite *HandlerTestSuite) TestCreateAccount_ReadOnlyRoleForbidden() {
	w := suite.doAs(domain.RoleReadOnly, http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":        "1.1.01",
		"name":        "Caja",
		"accountType": "ASSET",
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *HandlerTestSuite) TestCreateAccount_RejectsUnsupportedCurrency() {
	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":         "1.1.01",
		"name":         "Caja",
		"accountType":  "ASSET",
		"currencyCode": "GBP",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *HandlerTestSuite) TestCreateAccount_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate code", apperrors.ErrDuplicateCode, http.StatusConflict},
		{"invalid parent", apperrors.ErrInvalidParent, http.StatusBadRequest},
		{"accounting disabled", apperrors.ErrAccountingDisabled, http.StatusForbidden},
		{"unexpected", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockAccountService.On("CreateAccount", mockCtx, testOrgID, mock.Anything, testUserID).
				Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
				"code":        "1.1.01",
				"name":        "Caja",
				"accountType": "ASSET",
			})

			suite.Equal(tc.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestCreateAccount_InternalErrorHidesDetails() {
	suite.mockAccountService.On("CreateAccount", mockCtx, testOrgID, mock.Anything, testUserID).
		Return(nil, fmt.Errorf("pq: password authentication failed")).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":        "1.1.01",
		"name":        "Caja",
		"accountType": "ASSET",
	})

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccountByID", mockCtx, testOrgID, "55555555-5555-4555-8555-555555555555").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/55555555-5555-4555-8555-555555555555", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_PassesFilter() {
	suite.mockAccountService.On("ListAccounts", mockCtx, testOrgID,
		mock.MatchedBy(func(f domain.AccountFilter) bool {
			return f.AccountType != nil && *f.AccountType == domain.Expense && f.IncludeChildren
		}),
	).Return([]domain.Account{{AccountID: "44444444-4444-4444-8444-444444444445", AccountType: domain.Expense}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts?type=EXPENSE&includeChildren=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decode(w, &resp)
	suite.Len(resp, 1)
}

func (suite *HandlerTestSuite) TestListAccounts_InvalidType() {
	w := suite.do(http.MethodGet, "/api/v1/accounts?type=BOGUS", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSetupDefaultChart_AlreadySeeded() {
	suite.mockAccountService.On("SetupDefaultChart", mockCtx, testOrgID, testUserID).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/setup", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.mockAccountService.On("DeactivateAccount", mockCtx, testOrgID, "44444444-4444-4444-8444-444444444444", testUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/44444444-4444-4444-8444-444444444444", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}
