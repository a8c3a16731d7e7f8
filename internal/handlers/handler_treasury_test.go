package handlers_test

import (
	"net/http"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestCreateCashBox() {
	suite.mockTreasuryService.On("CreateCashBox", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.CreateCashBoxRequest) bool {
			return r.Name == "Obra Norte" && r.InitialBalance.Equal(decimal.NewFromInt(5000))
		}),
		testUserID,
	).Return(&domain.CashBox{CashBoxID: "bbbbbbbb-0000-4000-8000-000000000001", Name: "Obra Norte", CurrencyCode: domain.CurrencyPesos}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/cash-boxes", map[string]any{
		"name":           "Obra Norte",
		"initialBalance": "5000",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var box domain.CashBox
	suite.decode(w, &box)
	suite.Equal("bbbbbbbb-0000-4000-8000-000000000001", box.CashBoxID)
}

func (suite *HandlerTestSuite) TestListBankAccounts_IncludeInactive() {
	suite.mockTreasuryService.On("ListBankAccounts", mockCtx, testOrgID, true).
		Return([]domain.BankAccount{{BankAccountID: "cccccccc-0000-4000-8000-000000000001"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/bank-accounts?includeInactive=true", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateCashBox_PassesInstrumentType() {
	suite.mockTreasuryService.On("DeactivateInstrument", mockCtx, testOrgID,
		domain.Instrument{ID: "bbbbbbbb-0000-4000-8000-000000000001", Type: domain.CashBoxInstrument}, testUserID,
	).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/cash-boxes/bbbbbbbb-0000-4000-8000-000000000001", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateBankAccount_NotFound() {
	suite.mockTreasuryService.On("DeactivateInstrument", mockCtx, testOrgID,
		domain.Instrument{ID: "cccccccc-0000-4000-8000-000000000009", Type: domain.BankAccountInstrument}, testUserID,
	).Return(apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodDelete, "/api/v1/bank-accounts/cccccccc-0000-4000-8000-000000000009", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestRecordMovement() {
	txn := &domain.Transaction{
		TransactionID:   "eeeeeeee-0000-4000-8000-000000000001",
		OrganizationID:  testOrgID,
		Amount:          decimal.RequireFromString("-120.50"),
		CurrencyCode:    domain.CurrencyPesos,
		TransactionType: domain.TransactionExpense,
	}
	suite.mockTreasuryService.On("RecordMovement", mockCtx, testOrgID,
		mock.MatchedBy(func(r dto.RecordMovementRequest) bool {
			return r.Instrument() == domain.Instrument{ID: "bbbbbbbb-0000-4000-8000-000000000001", Type: domain.CashBoxInstrument} &&
				r.Amount.Equal(decimal.RequireFromString("120.50"))
		}),
		testUserID,
	).Return(txn, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/treasury/movements", map[string]any{
		"cashBoxID": "bbbbbbbb-0000-4000-8000-000000000001",
		"type":      "EXPENSE",
		"amount":    "120.50",
		"category":  "materials",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp domain.Transaction
	suite.decode(w, &resp)
	suite.True(resp.Amount.Equal(decimal.RequireFromString("-120.50")))
}

func (suite *HandlerTestSuite) TestRecordMovement_InstrumentBinding() {
	bodies := map[string]map[string]any{
		"both instruments": {"cashBoxID": "bbbbbbbb-0000-4000-8000-000000000001", "bankAccountID": "cccccccc-0000-4000-8000-000000000001", "type": "INCOME", "amount": "10"},
		"no instrument":    {"type": "INCOME", "amount": "10"},
		"unknown type":     {"cashBoxID": "bbbbbbbb-0000-4000-8000-000000000001", "type": "TRANSFER", "amount": "10"},
	}
	for name, body := range bodies {
		w := suite.do(http.MethodPost, "/api/v1/treasury/movements", body)
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
	suite.mockTreasuryService.AssertNotCalled(suite.T(), "RecordMovement")
}

func (suite *HandlerTestSuite) TestRecordMovement_InactiveInstrument() {
	suite.mockTreasuryService.On("RecordMovement", mockCtx, testOrgID, mock.Anything, testUserID).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodPost, "/api/v1/treasury/movements", map[string]any{
		"bankAccountID": "cccccccc-0000-4000-8000-000000000001",
		"type":          "INCOME",
		"amount":        "10",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListMovements_ByBankAccount() {
	suite.mockTreasuryService.On("ListMovements", mockCtx, testOrgID,
		&domain.Instrument{ID: "cccccccc-0000-4000-8000-000000000001", Type: domain.BankAccountInstrument}, 50, 0,
	).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/treasury/movements?bankAccountID=cccccccc-0000-4000-8000-000000000001", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMovementsResponse
	suite.decode(w, &resp)
	suite.NotNil(resp.Transactions)
	suite.Empty(resp.Transactions)
	suite.Nil(resp.NextToken)
}

func (suite *HandlerTestSuite) TestGetBalances_ReadOnlyAllowed() {
	balances := &domain.ConsolidatedBalances{
		OrganizationID: testOrgID,
		Totals: map[domain.Currency]decimal.Decimal{
			domain.CurrencyPesos: decimal.NewFromInt(700),
			domain.CurrencyUSD:   decimal.Zero,
			domain.CurrencyEUR:   decimal.Zero,
		},
	}
	suite.mockTreasuryService.On("GetConsolidatedBalances", mockCtx, testOrgID).Return(balances, nil).Once()

	w := suite.doAs(domain.RoleReadOnly, http.MethodGet, "/api/v1/treasury/balances", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.ConsolidatedBalances
	suite.decode(w, &resp)
	suite.True(resp.Totals[domain.CurrencyPesos].Equal(decimal.NewFromInt(700)))
	suite.Len(resp.Totals, 3)
}
