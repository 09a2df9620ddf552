package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/kaduregel/matchday/internal/balance"
	"github.com/kaduregel/matchday/internal/domain/matchday"
	"github.com/kaduregel/matchday/internal/usecase"
)

func TestMapError(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name       string
		err        error
		wantHTTP   int
		wantReason string
		wantStatus string
	}{
		{
			name:       "invalid date",
			err:        fmt.Errorf("parse announcement: %w", matchday.ErrInvalidDate),
			wantHTTP:   http.StatusBadRequest,
			wantReason: "invalidDate",
			wantStatus: "INVALID_ARGUMENT",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: message is required", usecase.ErrInvalidInput),
			wantHTTP:   http.StatusBadRequest,
			wantReason: "invalidInput",
			wantStatus: "INVALID_ARGUMENT",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: matchday=21-08-2026", usecase.ErrNotFound),
			wantHTTP:   http.StatusNotFound,
			wantReason: "notFound",
			wantStatus: "NOT_FOUND",
		},
		{
			name:       "infeasible roster",
			err:        fmt.Errorf("generate teams: %w", balance.ErrInfeasible),
			wantHTTP:   http.StatusUnprocessableEntity,
			wantReason: "cannotBalance",
			wantStatus: "FAILED_PRECONDITION",
		},
		{
			name:       "data access",
			err:        fmt.Errorf("%w: insert matchday: boom", usecase.ErrDataAccess),
			wantHTTP:   http.StatusServiceUnavailable,
			wantReason: "dataAccess",
			wantStatus: "UNAVAILABLE",
		},
		{
			name:       "dependency unavailable",
			err:        fmt.Errorf("%w: submit generation: pool closed", usecase.ErrDependencyUnavailable),
			wantHTTP:   http.StatusServiceUnavailable,
			wantReason: "dependencyUnavailable",
			wantStatus: "UNAVAILABLE",
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantHTTP:   http.StatusInternalServerError,
			wantReason: "internalError",
			wantStatus: "INTERNAL",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(ctx, tc.err)
			if mapped.HTTPStatus != tc.wantHTTP {
				t.Fatalf("unexpected http status: got=%d want=%d", mapped.HTTPStatus, tc.wantHTTP)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("unexpected reason: got=%s want=%s", mapped.Reason, tc.wantReason)
			}
			if mapped.Status != tc.wantStatus {
				t.Fatalf("unexpected status: got=%s want=%s", mapped.Status, tc.wantStatus)
			}
		})
	}
}

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}
