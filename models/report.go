package models

// TransactionStats summarizes a filtered transaction set. It is always
// computed over the same records a list call with the same filter returns.
type TransactionStats struct {
	TotalIncome        float64 `json:"totalIncome"`
	TotalExpenses      float64 `json:"totalExpenses"`
	NetIncome          float64 `json:"netIncome"`
	TransactionCount   int     `json:"transactionCount"`
	AverageTransaction float64 `json:"averageTransaction"`
}

// CategoryTotal is one (category, type) group of a by-category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// ImportResult reports the outcome of a bulk import. Errors holds one message
// per skipped record; the batch itself never aborts.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}
