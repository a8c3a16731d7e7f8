package services

import (
	"strings"

	"github.com/SscSPs/buildledger/internal/core/domain"
)

type chartTemplateRow struct {
	code        string
	name        string
	accountType domain.AccountType
	subType     string
}

// defaultChart is the standard chart for a construction company. Rows are ordered so
// that every parent precedes its children; a row's parent is its code minus the last segment.
var defaultChart = []chartTemplateRow{
	{"1", "Assets", domain.Asset, ""},
	{"1.1", "Cash and Banks", domain.Asset, "CURRENT"},
	{"1.1.01", "Cash on Hand", domain.Asset, "CURRENT"},
	{"1.1.02", "Bank Accounts", domain.Asset, "CURRENT"},
	{"1.1.03", "Checks in Portfolio", domain.Asset, "CURRENT"},
	{"1.2", "Receivables", domain.Asset, "CURRENT"},
	{"1.2.01", "Customer Receivables", domain.Asset, "CURRENT"},
	{"1.2.02", "Contract Retentions Receivable", domain.Asset, "CURRENT"},
	{"1.3", "Materials Inventory", domain.Asset, "CURRENT"},
	{"1.4", "Fixed Assets", domain.Asset, "NON_CURRENT"},
	{"1.4.01", "Machinery and Equipment", domain.Asset, "NON_CURRENT"},
	{"1.4.02", "Vehicles", domain.Asset, "NON_CURRENT"},
	{"2", "Liabilities", domain.Liability, ""},
	{"2.1", "Accounts Payable", domain.Liability, "CURRENT"},
	{"2.1.01", "Suppliers", domain.Liability, "CURRENT"},
	{"2.1.02", "Subcontractors", domain.Liability, "CURRENT"},
	{"2.1.03", "Issued Checks Payable", domain.Liability, "CURRENT"},
	{"2.2", "Taxes Payable", domain.Liability, "CURRENT"},
	{"2.3", "Payroll Payable", domain.Liability, "CURRENT"},
	{"3", "Equity", domain.Equity, ""},
	{"3.1", "Share Capital", domain.Equity, ""},
	{"3.2", "Retained Earnings", domain.Equity, ""},
	{"4", "Income", domain.Income, ""},
	{"4.1", "Construction Contracts", domain.Income, "OPERATING"},
	{"4.2", "Other Income", domain.Income, "NON_OPERATING"},
	{"5", "Expenses", domain.Expense, ""},
	{"5.1", "Direct Costs", domain.Expense, "DIRECT"},
	{"5.1.01", "Materials", domain.Expense, "DIRECT"},
	{"5.1.02", "Labor", domain.Expense, "DIRECT"},
	{"5.1.03", "Subcontracts", domain.Expense, "DIRECT"},
	{"5.1.04", "Equipment Rental", domain.Expense, "DIRECT"},
	{"5.2", "Overheads", domain.Expense, "INDIRECT"},
	{"5.2.01", "Administrative Expenses", domain.Expense, "INDIRECT"},
	{"5.2.02", "Bank Fees", domain.Expense, "INDIRECT"},
}

func parentCode(code string) string {
	i := strings.LastIndex(code, ".")
	if i < 0 {
		return ""
	}
	return code[:i]
}
