package handlers

import (
	"context"
	"net/http"
	"testing"

	"nextgenaccounts/backend/models"
)

func TestSyncProfileCreatesOnFirstContact(t *testing.T) {
	r, _ := newTestRouter(nil)

	body := map[string]string{
		"email":          "owner@example.com",
		"name":           "Owner",
		"organizationId": "org-1",
	}

	rec := doRequest(t, r, "POST", "/users/sync", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first sync, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.UserProfile
	decodeBody(t, rec, &created)
	if created.UserID != "dev-user" || created.Email != "owner@example.com" {
		t.Errorf("unexpected created profile: %+v", created)
	}

	// Second sync finds the existing record.
	rec = doRequest(t, r, "POST", "/users/sync", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat sync, got %d", rec.Code)
	}
	var existing models.UserProfile
	decodeBody(t, rec, &existing)
	if !existing.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("repeat sync replaced the profile: %+v", existing)
	}
}

func TestGetProfileByID(t *testing.T) {
	r, store := newTestRouter(nil)

	rec := doRequest(t, r, "GET", "/users/u1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown profile, got %d", rec.Code)
	}

	profile := models.UserProfile{UserID: "u1", Email: "owner@example.com", OrganizationID: "org-1"}
	if err := store.CreateProfile(context.Background(), &profile); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	rec = doRequest(t, r, "GET", "/users/u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got models.UserProfile
	decodeBody(t, rec, &got)
	if got.Email != "owner@example.com" {
		t.Errorf("unexpected profile: %+v", got)
	}
}
