package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"pkdindustries/dachat/internal/core"
	mocktest "pkdindustries/dachat/internal/testing"
)

func TestProfileTool_Success(t *testing.T) {
	store := &mocktest.MockHealthStore{
		Availability: true,
		ProfileData: core.HealthProfile{
			Sex:           core.SexFemale,
			DateOfBirth:   time.Date(1990, time.March, 7, 0, 0, 0, 0, time.UTC),
			BloodType:     core.BloodOPositive,
			WheelchairUse: core.WheelchairNo,
		},
	}
	tool := NewProfileTool(store)

	got, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"gender":"Female","dateOfBirth":"1990-3-7","bloodType":"O+","wheelchairUse":"No"}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if store.AuthRequests != 1 {
		t.Errorf("expected one authorization request, got %d", store.AuthRequests)
	}
}

func TestProfileTool_NotSetSentinels(t *testing.T) {
	store := &mocktest.MockHealthStore{Availability: true}
	tool := NewProfileTool(store)

	got, err := tool.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"gender":"Not Set","dateOfBirth":"Not Set","bloodType":"Not Set","wheelchairUse":"Not Set"}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestProfileTool_Unavailable(t *testing.T) {
	tool := NewProfileTool(&mocktest.MockHealthStore{Availability: false})

	_, err := tool.Execute(context.Background(), map[string]any{})
	if !errors.Is(err, core.ErrHealthDataNotAvailable) {
		t.Errorf("expected ErrHealthDataNotAvailable, got %v", err)
	}
}

func TestProfileTool_DenialNeverReturnsPartialData(t *testing.T) {
	store := &mocktest.MockHealthStore{
		Availability: true,
		AuthErr:      core.ErrUnauthorized,
		ProfileData: core.HealthProfile{
			Sex: core.SexMale,
		},
	}
	tool := NewProfileTool(store)

	result, err := tool.Execute(context.Background(), map[string]any{})
	if !errors.Is(err, core.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if result != "" {
		t.Errorf("expected no data on denial, got %q", result)
	}
}
