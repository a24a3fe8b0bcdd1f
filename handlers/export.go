package handlers

import (
	"encoding/json"
	"net/http"

	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/services"
)

// ExportTransactions streams the full record set as JSON or CSV.
func (h *TransactionHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = services.FormatJSON
	}

	data, err := h.svc.Export(r.Context(), format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	switch format {
	case services.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(data)
}

// ImportTransactions bulk-inserts records best-effort and reports per-record
// errors alongside the success count.
func (h *TransactionHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	var records []models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Import(r.Context(), records)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
