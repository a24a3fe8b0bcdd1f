package models

import "time"

// TransactionFilter narrows a transaction query. All fields are optional and
// compose independently; the zero value matches every record in the
// organization. Search is a case-insensitive substring match against
// description, reference and notes.
type TransactionFilter struct {
	DateFrom      *time.Time `json:"dateFrom,omitempty"`
	DateTo        *time.Time `json:"dateTo,omitempty"`
	Type          string     `json:"type,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
	Category      string     `json:"category,omitempty"`
	Account       string     `json:"account,omitempty"`
	Search        string     `json:"search,omitempty"`
}
