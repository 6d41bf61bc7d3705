package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/riskquant/pkg/controller/http"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/repository/memory"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

type memoryWriter struct {
	mu    sync.Mutex
	names []string
}

func (w *memoryWriter) Write(ctx context.Context, name string, data []byte) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.names = append(w.names, name)
	return "memory://" + name, nil
}

func (w *memoryWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.names)
}

func newTestServer(t *testing.T, opts ...usecase.Option) *server.Server {
	t.Helper()
	opts = append([]usecase.Option{
		usecase.WithSimulationSettings(model.SimulationSettings{Iterations: 200, Seed: 7}),
	}, opts...)
	uc := usecase.New(memory.New(), opts...)

	ctx := context.Background()
	_, err := uc.Profile.CreateProfile(ctx, &model.RiskProfile{
		ID:          "payment-breach",
		Name:        "Payment gateway breach",
		Category:    "data-breach",
		Probability: 0.35,
		Impact:      750000,
	})
	gt.NoError(t, err).Required()
	_, err = uc.Investment.CreateInvestment(ctx, &model.SecurityInvestment{
		ID: "mfa", Name: "Multi-factor authentication", Cost: 20000, Effectiveness: 0.5, ImplementationTime: 1, Lifecycle: 3,
	})
	gt.NoError(t, err).Required()

	return server.New(uc)
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/api/health", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, decode[map[string]string](t, w)["status"]).Equal("ok")
}

func TestProfileCRUD(t *testing.T) {
	srv := newTestServer(t)

	t.Run("create assigns ID and derived score", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/profiles", map[string]any{
			"name":        "Ransomware",
			"category":    "malware",
			"probability": 0.2,
			"impact":      1000000,
			"riskScore":   99,
		})
		gt.Value(t, w.Code).Equal(http.StatusCreated)
		created := decode[model.RiskProfile](t, w)
		gt.Bool(t, created.ID != "").True()
		gt.Number(t, created.RiskScore).LessOrEqual(10)

		w = do(t, srv, http.MethodGet, "/api/profiles/"+string(created.ID), nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
	})

	t.Run("list filters by category", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, "/api/profiles?category=data-breach", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Profiles []*model.RiskProfile `json:"profiles"`
		}](t, w)
		gt.A(t, body.Profiles).Length(1)
		gt.Value(t, body.Profiles[0].ID).Equal(model.ProfileID("payment-breach"))
	})

	t.Run("update takes the ID from the path", func(t *testing.T) {
		w := do(t, srv, http.MethodPut, "/api/profiles/payment-breach", map[string]any{
			"id":          "ignored",
			"name":        "Payment gateway breach",
			"category":    "data-breach",
			"probability": 0.5,
			"impact":      750000,
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		updated := decode[model.RiskProfile](t, w)
		gt.Value(t, updated.ID).Equal(model.ProfileID("payment-breach"))
		gt.Value(t, updated.Probability).Equal(0.5)
	})

	t.Run("invalid probability is rejected", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/profiles", map[string]any{
			"name":        "Broken",
			"probability": 1.5,
			"impact":      10,
		})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/profiles", map[string]any{"name": "x", "bogus": 1})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("duplicate ID conflicts", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/profiles", map[string]any{
			"id":          "payment-breach",
			"name":        "Duplicate",
			"probability": 0.1,
			"impact":      10,
		})
		gt.Value(t, w.Code).Equal(http.StatusConflict)
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		w := do(t, srv, http.MethodDelete, "/api/profiles/payment-breach", nil)
		gt.Value(t, w.Code).Equal(http.StatusNoContent)

		w = do(t, srv, http.MethodGet, "/api/profiles/payment-breach", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
		gt.Bool(t, decode[map[string]string](t, w)["error"] != "").True()
	})
}

func TestInvestmentCRUD(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/investments", map[string]any{
		"id": "waf", "name": "WAF", "cost": 50000, "effectiveness": 0.3, "lifecycle": 3,
	})
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	w = do(t, srv, http.MethodGet, "/api/investments", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	list := decode[struct {
		Investments []*model.SecurityInvestment `json:"investments"`
	}](t, w)
	gt.A(t, list.Investments).Length(2)

	w = do(t, srv, http.MethodPost, "/api/investments", map[string]any{
		"name": "Broken", "cost": 1, "effectiveness": 2, "lifecycle": 1,
	})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)

	w = do(t, srv, http.MethodDelete, "/api/investments/waf", nil)
	gt.Value(t, w.Code).Equal(http.StatusNoContent)
	w = do(t, srv, http.MethodGet, "/api/investments/waf", nil)
	gt.Value(t, w.Code).Equal(http.StatusNotFound)
}

func TestSimulations(t *testing.T) {
	srv := newTestServer(t)
	base := "/api/profiles/payment-breach/simulations"

	t.Run("monte carlo", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/monte-carlo", map[string]any{"iterations": 100, "bins": 5})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		result := decode[usecase.MonteCarloResult](t, w)
		gt.Value(t, result.Metrics.Count).Equal(100)
		gt.A(t, result.Histogram).Length(5)
		gt.A(t, result.Results).Length(0)
	})

	t.Run("monte carlo rejects too many iterations", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/monte-carlo", map[string]any{"iterations": model.MaxIterations + 1})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("what-if", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/what-if", map[string]any{
			"changes": []map[string]any{
				{"parameter": "probability", "newValue": 0.1, "description": "Patched"},
			},
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Results []*model.SimulationResult `json:"results"`
		}](t, w)
		gt.A(t, body.Results).Length(1)
		gt.Value(t, body.Results[0].ScenarioName).Equal("Patched")
		gt.Value(t, body.Results[0].ExpectedLoss).Equal(0.1 * 750000)
	})

	t.Run("sensitivity", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/sensitivity", map[string]any{
			"parameters": []map[string]any{
				{"name": "impact", "range": []float64{100000, 500000}, "steps": 4},
			},
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Results []*model.SimulationResult `json:"results"`
		}](t, w)
		gt.A(t, body.Results).Length(5)
		gt.Value(t, body.Results[4].Impact).Equal(500000.0)
	})

	t.Run("all threat levels", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/threat", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Scenarios []*model.ThreatScenario `json:"scenarios"`
		}](t, w)
		gt.A(t, body.Scenarios).Length(4)
	})

	t.Run("single threat level", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/threat/critical", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Scenarios []*model.ThreatScenario `json:"scenarios"`
		}](t, w)
		gt.A(t, body.Scenarios).Length(1)
		gt.Value(t, body.Scenarios[0].Result.ScenarioName).Equal("Threat Level: Critical")
	})

	t.Run("unknown threat level", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/threat/apocalyptic", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown profile", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/profiles/missing/simulations/monte-carlo", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestROI(t *testing.T) {
	srv := newTestServer(t)
	base := "/api/profiles/payment-breach/roi"

	t.Run("calculations", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base, map[string]any{"investmentIds": []string{"mfa"}})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Calculations []*model.ROICalculation `json:"calculations"`
		}](t, w)
		gt.A(t, body.Calculations).Length(1)
		gt.Number(t, body.Calculations[0].RiskReduction).GreaterOrEqual(131249.99)
		gt.Number(t, body.Calculations[0].RiskReduction).LessOrEqual(131250.01)
	})

	t.Run("optimal", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/optimal", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		body := decode[struct {
			Recommendation *model.ROICalculation `json:"recommendation"`
		}](t, w)
		gt.Value(t, body.Recommendation.Investment.ID).Equal(model.InvestmentID("mfa"))
	})

	t.Run("recommend rejects unknown criterion", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/recommend", map[string]any{"criterion": "vibes"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("recommend by payback", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/recommend", map[string]any{"criterion": "payback"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
	})

	t.Run("unknown investment", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, base+"/combined", map[string]any{"investmentIds": []string{"nope"}})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("target", func(t *testing.T) {
		w := do(t, srv, http.MethodGet, base+"/target?score=1.5", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		target := decode[model.EffectivenessTarget](t, w)
		gt.Bool(t, target.Feasible).True()

		w = do(t, srv, http.MethodGet, base+"/target?score=high", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestReport(t *testing.T) {
	t.Run("build", func(t *testing.T) {
		srv := newTestServer(t)
		w := do(t, srv, http.MethodGet, "/api/profiles/payment-breach/report?iterations=50&target=2", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		report := decode[model.RiskReport](t, w)
		gt.Value(t, report.Iterations).Equal(50)
		gt.A(t, report.Threats).Length(4)
		gt.A(t, report.Investments).Length(1)
	})

	t.Run("export disabled without writer", func(t *testing.T) {
		srv := newTestServer(t)
		w := do(t, srv, http.MethodPost, "/api/profiles/payment-breach/report/export", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotImplemented)
	})

	t.Run("export runs in the background", func(t *testing.T) {
		writer := &memoryWriter{}
		srv := newTestServer(t, usecase.WithReportWriter(writer))
		w := do(t, srv, http.MethodPost, "/api/profiles/payment-breach/report/export", map[string]any{"iterations": 50})
		gt.Value(t, w.Code).Equal(http.StatusAccepted)
		ticket := decode[usecase.ExportTicket](t, w)
		gt.Value(t, ticket.ProfileID).Equal(model.ProfileID("payment-breach"))

		deadline := time.Now().Add(5 * time.Second)
		for writer.count() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		gt.Value(t, writer.count()).Equal(1)
	})
}

func TestPortfolio(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/portfolio?iterations=50&seed=3", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)
	body := decode[struct {
		Entries []*model.PortfolioEntry `json:"entries"`
	}](t, w)
	gt.A(t, body.Entries).Length(1)

	w = do(t, srv, http.MethodGet, "/api/portfolio?iterations=many", nil)
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)
}
