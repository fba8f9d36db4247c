package e2e

import (
	"net/http"
	"testing"

	"github.com/sritek/hospital-ops-sub000/domain"
)

func TestLoginIssuesWorkingSession(t *testing.T) {
	ts := NewTestServer(t)
	reg := registerTenant(t, ts, "St. Mary's Clinic", "+5511987651001", "", "Sup3rSecret!")

	status, body := ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"phone":    reg.Phone,
		"password": reg.Password,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}

	data := payload(t, body)
	if data["token_type"] != "Bearer" {
		t.Errorf("expected Bearer token type, got %v", data["token_type"])
	}
	if data["expires_in"] != float64(900) {
		t.Errorf("expected expires_in 900, got %v", data["expires_in"])
	}
	user := data["user"].(map[string]any)
	if asUint(t, user["id"]) != reg.OwnerID {
		t.Errorf("expected user %d, got %v", reg.OwnerID, user["id"])
	}

	// The access token must be honored by a protected route.
	access, _ := data["access_token"].(string)
	status, body = ts.doJSON(t, http.MethodGet, "/auth/me", access, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d: %v", status, body)
	}
	me := payload(t, body)
	if asUint(t, me["id"]) != reg.OwnerID {
		t.Errorf("expected profile of user %d, got %v", reg.OwnerID, me["id"])
	}
	if asUint(t, me["tenant_id"]) != reg.TenantID {
		t.Errorf("expected tenant %d, got %v", reg.TenantID, me["tenant_id"])
	}
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	ts := NewTestServer(t)
	reg := registerTenant(t, ts, "St. Mary's Clinic", "+5511987651002", "", "Sup3rSecret!")

	status, body := ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"phone":    reg.Phone,
		"password": "WrongPass1!",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}
	wrongPasswordMsg := errorMessage(t, body)

	status, body = ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"phone":    "+5500000000000",
		"password": "WrongPass1!",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown phone, got %d", status)
	}
	unknownPhoneMsg := errorMessage(t, body)

	// An attacker probing for registered phones must learn nothing from
	// the response.
	if wrongPasswordMsg != unknownPhoneMsg {
		t.Errorf("failure messages differ: %q vs %q", wrongPasswordMsg, unknownPhoneMsg)
	}
	if wrongPasswordMsg != domain.ErrInvalidCredentials.Error() {
		t.Errorf("unexpected failure message: %q", wrongPasswordMsg)
	}
}

func TestLoginHonorsTenantScope(t *testing.T) {
	ts := NewTestServer(t)
	first := registerTenant(t, ts, "First Clinic", "+5511987651003", "", "Sup3rSecret!")
	second := registerTenant(t, ts, "Second Clinic", "+5511987651004", "", "Sup3rSecret!")

	status, _ := ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"tenant_id": second.TenantID,
		"phone":     first.Phone,
		"password":  first.Password,
	})
	if status != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong tenant scope, got %d", status)
	}

	status, _ = ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"tenant_id": first.TenantID,
		"phone":     first.Phone,
		"password":  first.Password,
	})
	if status != http.StatusOK {
		t.Errorf("expected 200 for matching tenant scope, got %d", status)
	}
}

func TestLockoutAfterRepeatedFailures(t *testing.T) {
	ts := NewTestServer(t)
	reg := registerTenant(t, ts, "St. Mary's Clinic", "+5511987651005", "", "Sup3rSecret!")

	var genericMsg string
	for i := 0; i < testMaxFailures; i++ {
		status, body := ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
			"phone":    reg.Phone,
			"password": "WrongPass1!",
		})
		if status != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, status)
		}
		genericMsg = errorMessage(t, body)
	}

	// Even the right password is refused while the lock holds, and the
	// message changes so the legitimate holder knows what happened.
	status, body := ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
		"phone":    reg.Phone,
		"password": reg.Password,
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 while locked, got %d", status)
	}
	lockedMsg := errorMessage(t, body)
	if lockedMsg != domain.ErrAccountLocked.Error() {
		t.Errorf("unexpected locked message: %q", lockedMsg)
	}
	if lockedMsg == genericMsg {
		t.Error("locked message must differ from the generic failure")
	}
}

func TestRefreshKeepsWorkingWhileLocked(t *testing.T) {
	ts := NewTestServer(t)
	reg := registerTenant(t, ts, "St. Mary's Clinic", "+5511987651006", "", "Sup3rSecret!")
	_, refresh := login(t, ts, reg.Phone, reg.Password)

	for i := 0; i < testMaxFailures; i++ {
		ts.doJSON(t, http.MethodPost, "/auth/login", "", map[string]any{
			"phone":    reg.Phone,
			"password": "WrongPass1!",
		})
	}

	// A lockout blocks new password logins, not sessions that already exist.
	status, body := ts.doJSON(t, http.MethodPost, "/auth/refresh", "", map[string]any{
		"refresh_token": refresh,
	})
	if status != http.StatusOK {
		t.Errorf("expected refresh to keep working under lockout, got %d: %v", status, body)
	}
}
