package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/services"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type stubGoalService struct {
	createErr error
	updateErr error
}

func (s *stubGoalService) Create(ctx context.Context, input services.CreateGoalInput) (*types.Goal, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &types.Goal{ID: uuid.New(), Title: input.Title, Activity: input.Activity}, nil
}

func (s *stubGoalService) Update(ctx context.Context, id uuid.UUID, input services.UpdateGoalInput) (*types.Goal, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &types.Goal{ID: id}, nil
}

func (s *stubGoalService) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubGoalService) List(ctx context.Context, activeOnly bool) ([]*types.Goal, error) {
	return nil, nil
}

func (s *stubGoalService) RecalcProgressFor(ctx context.Context, entryActivity string, now time.Time) error {
	return nil
}

func newGoalRouter(t *testing.T, svc services.GoalService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewGoalHandler(log, svc)
	router := gin.New()
	router.POST("/api/goals", h.Create)
	router.PUT("/api/goals/:id", h.Update)
	return router
}

func TestGoalCreateErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantLeak   bool
	}{
		{"validation_is_400", services.Validationf("title is required"), http.StatusBadRequest, true},
		{"persistence_is_500_generic", fmt.Errorf("failed to create goal: connection refused"), http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newGoalRouter(t, &stubGoalService{createErr: tc.err})

			body := strings.NewReader(`{"title":"Run more","activity":"run","target_value":10,"period":"weekly"}`)
			req := httptest.NewRequest(http.MethodPost, "/api/goals", body)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			leaked := strings.Contains(envelope.Error.Message, "connection refused")
			if tc.wantLeak {
				if envelope.Error.Message != tc.err.Error() {
					t.Errorf("message = %q, want the validation message", envelope.Error.Message)
				}
			} else if leaked || envelope.Error.Message != "internal error" {
				t.Errorf("message = %q, want generic internal error", envelope.Error.Message)
			}
		})
	}
}

func TestGoalUpdatePersistenceErrorIs500(t *testing.T) {
	router := newGoalRouter(t, &stubGoalService{updateErr: fmt.Errorf("failed to update goal: timeout")})

	body := strings.NewReader(`{"title":"Run further"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/goals/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "timeout") {
		t.Errorf("response leaked the persistence error: %s", w.Body.String())
	}
}
