package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"nextgenaccounts/backend/auth"
	"nextgenaccounts/backend/middleware"
	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/services"
	"nextgenaccounts/backend/storage"
)

// newTestRouter wires the handlers against an in-memory store the way main
// does. The auth middleware runs in dev mode (no Firebase client), so every
// request is attributed to the fixed dev user.
func newTestRouter(provider auth.IdentityProvider) (*mux.Router, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	svc := services.NewTransactionService(store)
	sessions := auth.NewSessionManager(provider, store)

	r := mux.NewRouter()

	sh := NewSessionHandler(sessions, provider)
	r.HandleFunc("/auth/signup", sh.SignUp).Methods("POST")
	r.HandleFunc("/auth/session", sh.Session).Methods("GET")
	r.HandleFunc("/auth/logout", sh.Logout).Methods("POST")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	th := NewTransactionHandler(svc)
	protected.HandleFunc("/transactions", th.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions", th.AddTransaction).Methods("POST")
	protected.HandleFunc("/transactions/stats", th.GetStats).Methods("GET")
	protected.HandleFunc("/transactions/by-category", th.GetByCategory).Methods("GET")
	protected.HandleFunc("/transactions/export", th.ExportTransactions).Methods("GET")
	protected.HandleFunc("/transactions/import", th.ImportTransactions).Methods("POST")
	protected.HandleFunc("/transactions/{id}", th.GetTransaction).Methods("GET")
	protected.HandleFunc("/transactions/{id}", th.UpdateTransaction).Methods("PUT")
	protected.HandleFunc("/transactions/{id}", th.DeleteTransaction).Methods("DELETE")

	uh := NewUserHandler(store)
	protected.HandleFunc("/users/sync", uh.SyncProfile).Methods("POST")
	protected.HandleFunc("/users/{id}", uh.GetProfile).Methods("GET")

	return r, store
}

func sampleTransaction() models.Transaction {
	return models.Transaction{
		Date:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Type:           models.TypeSell,
		Amount:         25000,
		Description:    "Product Sales Revenue",
		PaymentMethod:  "Cash",
		UserID:         "user-1",
		OrganizationID: "org-1",
	}
}

func doRequest(t *testing.T, r *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}
