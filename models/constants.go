package models

// Transaction types
const (
	TypeBuy             = "BUY"
	TypeSell            = "SELL"
	TypeExpenditure     = "EXPENDITURE"
	TypeCapitalDrawings = "CAPITAL_DRAWINGS"
	TypeBank            = "BANK"
	TypeLoan            = "LOAN"
)

// GST registration types
const (
	GSTTypeRegular   = "Regular"
	GSTTypeComposite = "Composite"
)

// TransactionTypes is the closed set of valid transaction types.
var TransactionTypes = []string{
	TypeBuy,
	TypeSell,
	TypeExpenditure,
	TypeCapitalDrawings,
	TypeBank,
	TypeLoan,
}

// PaymentMethods is the closed set of valid payment methods.
var PaymentMethods = []string{
	"Cash",
	"Bank",
	"Credit",
	"UPI",
	"Card",
	"Cheque",
	"NEFT",
	"RTGS",
}

// GSTTypes is the closed set of valid GST registration types.
var GSTTypes = []string{
	GSTTypeRegular,
	GSTTypeComposite,
}

// incomeTypes maps each transaction type to its cash direction. SELL is sale
// revenue, BANK covers deposits and LOAN is principal received; everything
// else is money going out.
var incomeTypes = map[string]bool{
	TypeSell: true,
	TypeBank: true,
	TypeLoan: true,
}

// IsValidTransactionType reports whether t is a member of the type enumeration.
func IsValidTransactionType(t string) bool {
	for _, v := range TransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod reports whether m is a member of the payment method enumeration.
func IsValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// IsValidGSTType reports whether g is a member of the GST type enumeration.
func IsValidGSTType(g string) bool {
	for _, v := range GSTTypes {
		if g == v {
			return true
		}
	}
	return false
}

// IsIncomeType reports whether amounts of the given transaction type count
// toward total income rather than total expenses.
func IsIncomeType(t string) bool {
	return incomeTypes[t]
}
