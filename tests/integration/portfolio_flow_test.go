package integration

import (
	"fmt"
	"net/http"
	"testing"
)

const validDescription = "Diversified multi-strategy portfolio with seven years of verified history."

func createBody(name string, price float64) string {
	return fmt.Sprintf(`{
		"name": %q,
		"description": %q,
		"price": %g,
		"tier": "Premium",
		"category": "Forex",
		"metrics": {"net_profit": "15000", "sharpe_ratio": 4.2, "cagr": 38.5, "max_drawdown": 7.1, "total_trades": 900, "win_rate": 71.5}
	}`, name, validDescription, price)
}

func TestPortfolioFlow(t *testing.T) {
	t.Run("catalog_seeds_from_fixtures", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		rec := app.request("GET", "/api/v1/admin/portfolios", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		portfolios := parseJSON(t, rec)["portfolios"].([]interface{})
		if len(portfolios) == 0 {
			t.Fatal("expected seeded catalog")
		}
		first := portfolios[0].(map[string]interface{})
		if first["id"] == "" || first["name"] == "" {
			t.Errorf("expected seeded entries to carry identity, got %v", first)
		}
	})

	t.Run("create_get_delete", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		rec := app.request("POST", "/api/v1/admin/portfolios", createBody("Momentum Alpha", 2499), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		created := parseJSON(t, rec)["portfolio"].(map[string]interface{})
		id := created["id"].(string)
		if id == "" {
			t.Fatal("expected assigned portfolio ID")
		}
		if created["price"] != "2499" {
			t.Errorf("expected price 2499, got %v", created["price"])
		}

		rec = app.request("GET", "/api/v1/admin/portfolios/"+id, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = app.request("DELETE", "/api/v1/admin/portfolios/"+id, "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		rec = app.request("GET", "/api/v1/admin/portfolios/"+id, "", token)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "PORTFOLIO_NOT_FOUND" {
			t.Errorf("expected PORTFOLIO_NOT_FOUND, got %s", code)
		}
	})

	t.Run("create_validation", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		cases := map[string]string{
			"short_description": `{"name":"X","description":"too short","price":100,"tier":"Premium"}`,
			"invalid_tier":      fmt.Sprintf(`{"name":"X","description":%q,"price":100,"tier":"Platinum"}`, validDescription),
			"price_above_cap":   createBody("Overpriced", 10001),
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				rec := app.request("POST", "/api/v1/admin/portfolios", body, token)
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
				}
			})
		}
	})

	t.Run("update_field", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		rec := app.request("POST", "/api/v1/admin/portfolios", createBody("Editable", 1500), token)
		id := parseJSON(t, rec)["portfolio"].(map[string]interface{})["id"].(string)

		rec = app.request("PATCH", "/api/v1/admin/portfolios/"+id+"/field", `{"field":"price","value":4200}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		updated := parseJSON(t, rec)["portfolio"].(map[string]interface{})
		if updated["price"] != "4200" {
			t.Errorf("expected price 4200, got %v", updated["price"])
		}

		rec = app.request("PATCH", "/api/v1/admin/portfolios/"+id+"/field", `{"field":"tier","value":"Elite Premium"}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = app.request("PATCH", "/api/v1/admin/portfolios/"+id+"/field", `{"field":"nope","value":1}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "UNKNOWN_FIELD" {
			t.Errorf("expected UNKNOWN_FIELD, got %s", code)
		}
	})

	t.Run("update_metric", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		rec := app.request("POST", "/api/v1/admin/portfolios", createBody("Tunable", 1800), token)
		id := parseJSON(t, rec)["portfolio"].(map[string]interface{})["id"].(string)

		rec = app.request("PATCH", "/api/v1/admin/portfolios/"+id+"/metric", `{"metric":"cagr","value":44.4}`, token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		metrics := parseJSON(t, rec)["portfolio"].(map[string]interface{})["metrics"].(map[string]interface{})
		if metrics["cagr"].(float64) != 44.4 {
			t.Errorf("expected cagr 44.4, got %v", metrics["cagr"])
		}

		rec = app.request("PATCH", "/api/v1/admin/portfolios/"+id+"/metric", `{"metric":"sharpe_ratio","value":25}`, token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "METRIC_OUT_OF_RANGE" {
			t.Errorf("expected METRIC_OUT_OF_RANGE, got %s", code)
		}
	})

	t.Run("dashboard", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		rec := app.request("GET", "/api/v1/admin/dashboard", "", token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		stats := parseJSON(t, rec)["stats"].(map[string]interface{})
		if stats["total_portfolios"].(float64) == 0 {
			t.Error("expected seeded portfolios in dashboard stats")
		}
		if _, ok := stats["average_price"]; !ok {
			t.Error("expected average_price in dashboard stats")
		}
	})

	t.Run("edits_are_logged_and_backed_up", func(t *testing.T) {
		app := setupApp(t)
		token := app.login(t, "admin", "TradingBots2025!")

		rec := app.request("POST", "/api/v1/admin/portfolios", createBody("Audited", 1200), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}

		rec = app.request("GET", "/api/v1/admin/logs?action=create", "", token)
		if total := parseJSON(t, rec)["total"].(float64); total != 1 {
			t.Errorf("expected one create log entry, got %v", total)
		}

		rec = app.request("GET", "/api/v1/admin/backups", "", token)
		backups := parseJSON(t, rec)["backups"].([]interface{})
		if len(backups) == 0 {
			t.Fatal("expected an automatic backup after catalog save")
		}
		if kind := backups[0].(map[string]interface{})["type"]; kind != "automatic" {
			t.Errorf("expected automatic backup, got %v", kind)
		}
	})
}
