package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/relearnapp/backend/internal/domain"
	"github.com/relearnapp/backend/internal/service/settings"
)

type settingsServiceMock struct {
	GetFunc    func(ctx context.Context) (*domain.Settings, error)
	UpdateFunc func(ctx context.Context, input settings.UpdateInput) (*domain.Settings, error)
}

func (m *settingsServiceMock) Get(ctx context.Context) (*domain.Settings, error) {
	return m.GetFunc(ctx)
}

func (m *settingsServiceMock) Update(ctx context.Context, input settings.UpdateInput) (*domain.Settings, error) {
	return m.UpdateFunc(ctx, input)
}

func TestGetSettings_Success(t *testing.T) {
	t.Parallel()

	svc := &settingsServiceMock{
		GetFunc: func(_ context.Context) (*domain.Settings, error) {
			return &domain.Settings{
				Timezone:      "Europe/Moscow",
				DailyNewWords: 10,
				DailyReviews:  20,
				Permission:    domain.PermissionUndetermined,
				UpdatedAt:     time.Now(),
			}, nil
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Timezone != "Europe/Moscow" {
		t.Errorf("unexpected timezone: %q", resp.Timezone)
	}
	if resp.Permission != "UNDETERMINED" {
		t.Errorf("unexpected permission: %q", resp.Permission)
	}
}

func TestUpdateSettings_PartialBody(t *testing.T) {
	t.Parallel()

	svc := &settingsServiceMock{
		UpdateFunc: func(_ context.Context, input settings.UpdateInput) (*domain.Settings, error) {
			if input.Timezone != nil {
				t.Errorf("expected absent timezone to stay nil, got %q", *input.Timezone)
			}
			if input.DailyNewWords == nil || *input.DailyNewWords != 15 {
				t.Errorf("unexpected daily new words: %v", input.DailyNewWords)
			}
			if input.Permission == nil || *input.Permission != domain.PermissionGranted {
				t.Errorf("unexpected permission: %v", input.Permission)
			}
			return &domain.Settings{
				Timezone:      "UTC",
				DailyNewWords: 15,
				DailyReviews:  20,
				Permission:    domain.PermissionGranted,
			}, nil
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	body := strings.NewReader(`{"dailyNewWords":15,"permission":"GRANTED"}`)
	req := httptest.NewRequest(http.MethodPatch, "/settings", body)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.DailyNewWords != 15 {
		t.Errorf("unexpected daily new words: %d", resp.DailyNewWords)
	}
}

func TestUpdateSettings_InvalidTimezone(t *testing.T) {
	t.Parallel()

	svc := &settingsServiceMock{
		UpdateFunc: func(_ context.Context, _ settings.UpdateInput) (*domain.Settings, error) {
			return nil, domain.NewValidationError("timezone", "must be a valid IANA timezone")
		},
	}
	h := NewSettingsHandler(svc, testLogger())

	body := strings.NewReader(`{"timezone":"Mars/Olympus"}`)
	req := httptest.NewRequest(http.MethodPatch, "/settings", body)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
