package models

import "time"

// Transaction is the canonical business record. ID, CreatedAt and UpdatedAt
// are server-assigned; ID and CreatedAt never change after creation.
type Transaction struct {
	ID             string              `json:"id"`
	Date           time.Time           `json:"date"`
	Type           string              `json:"type"`
	SubType        string              `json:"subType,omitempty"`
	Amount         float64             `json:"amount"`
	Description    string              `json:"description"`
	Category       string              `json:"category,omitempty"`
	Account        string              `json:"account,omitempty"`
	Reference      string              `json:"reference,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	PaymentMethod  string              `json:"paymentMethod"`
	GSTApplicable  bool                `json:"gstApplicable"`
	GSTPercentage  float64             `json:"gstPercentage,omitempty"`
	GSTN           string              `json:"gstn,omitempty"`
	GSTType        string              `json:"gstType,omitempty"`
	Details        *TransactionDetails `json:"details,omitempty"`
	UserID         string              `json:"userId"`
	OrganizationID string              `json:"organizationId"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// TransactionDetails holds the type-specific attributes of a transaction.
// At most one variant is populated, and it must match the record's Type;
// validation enforces that exhaustively.
type TransactionDetails struct {
	Trade   *TradeDetails   `json:"trade,omitempty"`
	Expense *ExpenseDetails `json:"expense,omitempty"`
	Capital *CapitalDetails `json:"capital,omitempty"`
	Bank    *BankDetails    `json:"bank,omitempty"`
	Loan    *LoanDetails    `json:"loan,omitempty"`
}

// TradeDetails applies to BUY and SELL transactions.
type TradeDetails struct {
	VendorName  string  `json:"vendorName,omitempty"`
	BuyerName   string  `json:"buyerName,omitempty"`
	ProductName string  `json:"productName,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

// ExpenseDetails applies to EXPENDITURE transactions.
type ExpenseDetails struct {
	ExpenseType string `json:"expenseType,omitempty"`
	PaidTo      string `json:"paidTo,omitempty"`
}

// CapitalDetails applies to CAPITAL_DRAWINGS transactions.
type CapitalDetails struct {
	AssetName string `json:"assetName,omitempty"`
}

// BankDetails applies to BANK transactions.
type BankDetails struct {
	BankAccount string `json:"bankAccount,omitempty"`
}

// LoanDetails applies to LOAN transactions.
type LoanDetails struct {
	LoanProvider string  `json:"loanProvider,omitempty"`
	InterestRate float64 `json:"interestRate,omitempty"`
	EMIAmount    float64 `json:"emiAmount,omitempty"`
}
