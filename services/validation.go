package services

import (
	"fmt"
	"strings"

	"nextgenaccounts/backend/models"
)

// FieldViolation names one field that failed validation and why.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated constraint of a candidate record.
// It is caller-fixable and never worth retrying as-is.
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *ValidationError) Error() string {
	fields := e.Fields()
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Fields returns the violated field names in check order.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// HasField reports whether the named field is among the violations.
func (e *ValidationError) HasField(name string) bool {
	for _, v := range e.Violations {
		if v.Field == name {
			return true
		}
	}
	return false
}

// ValidateTransaction checks a candidate record against all constraint
// groups. The groups are independent and all of them run, so the returned
// error names every violated field at once, not just the first.
func ValidateTransaction(t *models.Transaction) error {
	var violations []FieldViolation

	violations = append(violations, presenceViolations(t)...)
	violations = append(violations, enumViolations(t)...)
	violations = append(violations, gstViolations(t)...)
	violations = append(violations, detailViolations(t)...)

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// presenceViolations is the minimal check set; bulk import admits any record
// that passes it. A zero or negative amount counts as unset, so no record can
// reach a store without a positive amount.
func presenceViolations(t *models.Transaction) []FieldViolation {
	var violations []FieldViolation

	if t.Date.IsZero() {
		violations = append(violations, FieldViolation{Field: "date", Message: "date is required"})
	}
	if strings.TrimSpace(t.Type) == "" {
		violations = append(violations, FieldViolation{Field: "type", Message: "type is required"})
	}
	if t.Amount <= 0 {
		violations = append(violations, FieldViolation{Field: "amount", Message: "amount must be greater than zero"})
	}
	if strings.TrimSpace(t.Description) == "" {
		violations = append(violations, FieldViolation{Field: "description", Message: "description is required"})
	}
	if strings.TrimSpace(t.PaymentMethod) == "" {
		violations = append(violations, FieldViolation{Field: "paymentMethod", Message: "payment method is required"})
	}
	if strings.TrimSpace(t.UserID) == "" {
		violations = append(violations, FieldViolation{Field: "userId", Message: "user id is required"})
	}
	if strings.TrimSpace(t.OrganizationID) == "" {
		violations = append(violations, FieldViolation{Field: "organizationId", Message: "organization id is required"})
	}
	return violations
}

func enumViolations(t *models.Transaction) []FieldViolation {
	var violations []FieldViolation

	if t.Type != "" && !models.IsValidTransactionType(t.Type) {
		violations = append(violations, FieldViolation{
			Field:   "type",
			Message: fmt.Sprintf("type must be one of %s", strings.Join(models.TransactionTypes, ", ")),
		})
	}
	if t.PaymentMethod != "" && !models.IsValidPaymentMethod(t.PaymentMethod) {
		violations = append(violations, FieldViolation{
			Field:   "paymentMethod",
			Message: fmt.Sprintf("payment method must be one of %s", strings.Join(models.PaymentMethods, ", ")),
		})
	}
	return violations
}

func gstViolations(t *models.Transaction) []FieldViolation {
	if !t.GSTApplicable {
		return nil
	}

	var violations []FieldViolation
	if t.GSTPercentage <= 0 {
		violations = append(violations, FieldViolation{Field: "gstPercentage", Message: "gstPercentage is required when GST applies"})
	}
	if strings.TrimSpace(t.GSTN) == "" {
		violations = append(violations, FieldViolation{Field: "gstn", Message: "gstn is required when GST applies"})
	}
	if strings.TrimSpace(t.GSTType) == "" || !models.IsValidGSTType(t.GSTType) {
		violations = append(violations, FieldViolation{
			Field:   "gstType",
			Message: fmt.Sprintf("gstType must be one of %s when GST applies", strings.Join(models.GSTTypes, ", ")),
		})
	}
	return violations
}

// detailViolations enforces the tagged-union rule: the populated details
// variant must be the one matching the record's type. The switch covers every
// member of the type enumeration.
func detailViolations(t *models.Transaction) []FieldViolation {
	d := t.Details
	if d == nil {
		return nil
	}

	var allowed *string
	switch t.Type {
	case models.TypeBuy, models.TypeSell:
		if d.Trade == nil || d.Expense != nil || d.Capital != nil || d.Bank != nil || d.Loan != nil {
			allowed = ptr("trade")
		}
	case models.TypeExpenditure:
		if d.Expense == nil || d.Trade != nil || d.Capital != nil || d.Bank != nil || d.Loan != nil {
			allowed = ptr("expense")
		}
	case models.TypeCapitalDrawings:
		if d.Capital == nil || d.Trade != nil || d.Expense != nil || d.Bank != nil || d.Loan != nil {
			allowed = ptr("capital")
		}
	case models.TypeBank:
		if d.Bank == nil || d.Trade != nil || d.Expense != nil || d.Capital != nil || d.Loan != nil {
			allowed = ptr("bank")
		}
	case models.TypeLoan:
		if d.Loan == nil || d.Trade != nil || d.Expense != nil || d.Capital != nil || d.Bank != nil {
			allowed = ptr("loan")
		}
	default:
		// unknown type is already reported by the enum check
		return nil
	}

	if allowed == nil {
		return nil
	}
	return []FieldViolation{{
		Field:   "details",
		Message: fmt.Sprintf("details for a %s transaction must use only the %s variant", t.Type, *allowed),
	}}
}

func ptr(s string) *string { return &s }
