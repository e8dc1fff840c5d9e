package integration

import (
	"net/http"
	"testing"
)

// Two identities share the application but must never observe each other's
// records through any endpoint.
func TestIsolation_RecordsScopedToOwner(t *testing.T) {
	app := setupApp(t)
	minsu := app.loginAs(t, 72001, "민수")
	jiyoung := app.loginAs(t, 72002, "지영")

	// 민수 writes a transaction and an asset.
	rec := app.request("POST", "/api/transactions",
		`{"date":"2026-08-01","description":"커피","amount":4500,"category":"식비","kind":"expense"}`,
		minsu)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	transactionID := parseJSON(t, rec)["id"].(string)

	rec = app.request("POST", "/api/assets", `{"name":"통장","amount":1000000}`, minsu)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	assetID := parseJSON(t, rec)["id"].(string)

	// 지영 sees empty collections.
	rec = app.request("GET", "/api/transactions", "", jiyoung)
	if list := parseJSONArray(t, rec); len(list) != 0 {
		t.Errorf("expected empty ledger for other identity, got %d entries", len(list))
	}
	rec = app.request("GET", "/api/assets", "", jiyoung)
	if list := parseJSONArray(t, rec); len(list) != 0 {
		t.Errorf("expected no assets for other identity, got %d", len(list))
	}

	// 지영 cannot update or observe 민수's records; misses read as not found.
	rec = app.request("PUT", "/api/transactions/"+transactionID, `{"amount":1}`, jiyoung)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating foreign transaction, got %d", rec.Code)
	}
	rec = app.request("PUT", "/api/assets/"+assetID, `{"amount":1}`, jiyoung)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 updating foreign asset, got %d", rec.Code)
	}

	// A foreign delete is a silent no-op that leaves the record intact.
	rec = app.request("DELETE", "/api/transactions/"+transactionID, "", jiyoung)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 on foreign delete, got %d", rec.Code)
	}
	rec = app.request("GET", "/api/transactions", "", minsu)
	list := parseJSONArray(t, rec)
	if len(list) != 1 {
		t.Fatalf("expected owner's record to survive foreign delete, got %d entries", len(list))
	}
	if list[0]["amount"].(float64) != 4500 {
		t.Errorf("expected amount untouched at 4500, got %v", list[0]["amount"])
	}
}

// Resetting one identity's data leaves every other identity's records alone.
func TestIsolation_ResetScopedToOwner(t *testing.T) {
	app := setupApp(t)
	minsu := app.loginAs(t, 72001, "민수")
	jiyoung := app.loginAs(t, 72002, "지영")

	for _, session := range []string{minsu, jiyoung} {
		rec := app.request("POST", "/api/transactions",
			`{"date":"2026-08-01","description":"기록","amount":100,"category":"기타","kind":"expense"}`,
			session)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		rec = app.request("POST", "/api/assets", `{"name":"통장","amount":100}`, session)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	rec := app.request("DELETE", "/api/data", "", minsu)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// 민수's collections are empty, 지영's are intact.
	rec = app.request("GET", "/api/transactions", "", minsu)
	if list := parseJSONArray(t, rec); len(list) != 0 {
		t.Errorf("expected empty ledger after reset, got %d entries", len(list))
	}
	rec = app.request("GET", "/api/assets", "", minsu)
	if list := parseJSONArray(t, rec); len(list) != 0 {
		t.Errorf("expected no assets after reset, got %d", len(list))
	}
	rec = app.request("GET", "/api/transactions", "", jiyoung)
	if list := parseJSONArray(t, rec); len(list) != 1 {
		t.Errorf("expected other identity's ledger intact, got %d entries", len(list))
	}
	rec = app.request("GET", "/api/assets", "", jiyoung)
	if list := parseJSONArray(t, rec); len(list) != 1 {
		t.Errorf("expected other identity's assets intact, got %d", len(list))
	}
}
