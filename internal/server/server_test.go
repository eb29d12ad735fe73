package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-travel-planner/internal/config"
	"ai-travel-planner/internal/planner"
	"ai-travel-planner/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// MockPlanGenerator returns a fixed plan or a fixed error.
type MockPlanGenerator struct {
	Plan *planner.TravelPlan
	Err  error
}

func (m *MockPlanGenerator) GeneratePlan(ctx context.Context, req planner.Request) (*planner.TravelPlan, []shared.StageMeta, error) {
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Plan, []shared.StageMeta{{StageName: "flights"}}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins:   []string{"http://localhost:3000"},
		RateLimitPerMinute: 100,
	}
}

func planBody() *bytes.Buffer {
	body, _ := json.Marshal(map[string]any{
		"source":      "BOM",
		"destination": "GOI",
		"depart_date": "2026-01-10",
		"return_date": "2026-01-13",
		"theme":       "Beach",
	})
	return bytes.NewBuffer(body)
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(testConfig(), &MockPlanGenerator{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", resp["status"])
	}
}

func TestGeneratePlanEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Success", func(t *testing.T) {
		mock := &MockPlanGenerator{Plan: &planner.TravelPlan{
			Source:      "BOM",
			Destination: "Goa",
			NumDays:     3,
		}}
		srv := New(testConfig(), mock, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
		req.Header.Set("Content-Type", "application/json")
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var plan planner.TravelPlan
		if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
			t.Fatalf("Failed to decode plan: %v", err)
		}
		if plan.Destination != "Goa" {
			t.Errorf("Expected destination 'Goa', got '%s'", plan.Destination)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		srv := New(testConfig(), &MockPlanGenerator{}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", bytes.NewBufferString(`{"source": "BOM"}`))
		req.Header.Set("Content-Type", "application/json")
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("PlannerError", func(t *testing.T) {
		srv := New(testConfig(), &MockPlanGenerator{Err: fmt.Errorf("pipeline broken")}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
		req.Header.Set("Content-Type", "application/json")
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.AuthSecret = "test-secret"
	srv := New(cfg, &MockPlanGenerator{Plan: &planner.TravelPlan{}}, nil)

	t.Run("MissingToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
		req.Header.Set("Content-Type", "application/json")
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer not-a-token")
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("ValidToken", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "tester",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("Failed to sign token: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+signed)
		srv.Handler().ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	srv := New(cfg, &MockPlanGenerator{Plan: &planner.TravelPlan{}}, nil)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("Expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/generate_plan", planBody())
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 on second request, got %d", second.Code)
	}
}
