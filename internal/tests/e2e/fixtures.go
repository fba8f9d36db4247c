package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sritek/hospital-ops-sub000/domain"
	"github.com/sritek/hospital-ops-sub000/internal/infrastructure/repositories"
)

// doJSON sends one request to the running server and decodes the response
func (ts *TestServer) doJSON(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.BaseURL+path, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	decoded := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && err != io.EOF {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp.StatusCode, decoded
}

// payload unwraps the data envelope from a successful response
func payload(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return data
}

// errorMessage reads the error field from a failed response
func errorMessage(t *testing.T, body map[string]any) string {
	t.Helper()

	msg, ok := body["error"].(string)
	if !ok {
		t.Fatalf("response has no error field: %v", body)
	}
	return msg
}

// asUint converts a decoded JSON number to an entity ID
func asUint(t *testing.T, v any) uint {
	t.Helper()

	f, ok := v.(float64)
	if !ok {
		t.Fatalf("expected numeric id, got %T (%v)", v, v)
	}
	return uint(f)
}

// RegisteredTenant captures what a registration call created
type RegisteredTenant struct {
	TenantID uint
	BranchID uint
	OwnerID  uint
	Slug     string
	Phone    string
	Password string
}

// registerTenant signs up a tenant through the API and returns the
// created identifiers
func registerTenant(t *testing.T, ts *TestServer, name, phone, email, password string) *RegisteredTenant {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/auth/register", "", map[string]any{
		"tenant_name": name,
		"full_name":   "Ana Souza",
		"phone":       phone,
		"email":       email,
		"password":    password,
	})
	if status != http.StatusCreated {
		t.Fatalf("registration returned %d: %v", status, body)
	}

	data := payload(t, body)
	tenant, _ := data["tenant"].(map[string]any)
	branch, _ := data["branch"].(map[string]any)
	owner, _ := data["owner"].(map[string]any)
	if tenant == nil || branch == nil || owner == nil {
		t.Fatalf("registration response incomplete: %v", data)
	}

	slug, _ := tenant["slug"].(string)
	return &RegisteredTenant{
		TenantID: asUint(t, tenant["id"]),
		BranchID: asUint(t, branch["id"]),
		OwnerID:  asUint(t, owner["id"]),
		Slug:     slug,
		Phone:    phone,
		Password: password,
	}
}

// login authenticates through the API and returns the token pair
func login(t *testing.T, ts *TestServer, phone, password string) (accessToken, refreshToken string) {
	t.Helper()

	status, body := ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"phone":    phone,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login returned %d: %v", status, body)
	}

	data := payload(t, body)
	accessToken, _ = data["access_token"].(string)
	refreshToken, _ = data["refresh_token"].(string)
	if accessToken == "" || refreshToken == "" {
		t.Fatalf("login response missing tokens: %v", data)
	}
	return accessToken, refreshToken
}

// seedStaff inserts a staff user directly into storage, bypassing the
// registration flow, along with a primary branch membership
func seedStaff(t *testing.T, ts *TestServer, tenantID, branchID uint, role domain.Role, phone, password string, lockedUntil *time.Time) uint {
	t.Helper()

	hash, err := ts.Hasher.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &repositories.DBUser{
		TenantID:     tenantID,
		Phone:        phone,
		FullName:     fmt.Sprintf("Staff %s", phone),
		PasswordHash: hash,
		Role:         string(role),
		IsActive:     true,
		LockedUntil:  lockedUntil,
	}
	if lockedUntil != nil {
		user.FailedLoginAttempts = testMaxFailures
	}
	if err := ts.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	if err := ts.DB.Create(&repositories.DBBranchMembership{
		UserID:    user.ID,
		BranchID:  branchID,
		IsPrimary: true,
	}).Error; err != nil {
		t.Fatalf("failed to seed membership: %v", err)
	}
	return user.ID
}
