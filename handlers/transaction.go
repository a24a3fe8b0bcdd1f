package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nextgenaccounts/backend/middleware"
	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/services"
)

// TransactionHandler serves the transaction CRUD and reporting routes.
type TransactionHandler struct {
	svc *services.TransactionService
}

func NewTransactionHandler(svc *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organizationId")
	if organizationID == "" {
		http.Error(w, "organizationId is required", http.StatusBadRequest)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.svc.List(r.Context(), organizationID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Attribute the record to the authenticated user unless the form
	// already did.
	if t.UserID == "" {
		t.UserID = middleware.GetUserIDFromContext(r)
	}

	id, err := h.svc.Create(r.Context(), &t)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseFilter reads the composable list filters from query parameters. Dates
// accept the dashboard's date-only form or full RFC 3339.
func parseFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{
		Type:          q.Get("type"),
		PaymentMethod: q.Get("paymentMethod"),
		Category:      q.Get("category"),
		Account:       q.Get("account"),
		Search:        q.Get("search"),
	}

	if from := q.Get("dateFrom"); from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return filter, err
		}
		filter.DateFrom = &parsed
	}
	if to := q.Get("dateTo"); to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return filter, err
		}
		filter.DateTo = &parsed
	}
	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
