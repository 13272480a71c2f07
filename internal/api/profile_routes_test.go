package api

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/ciclo/internal/phases"
	"github.com/terraincognita07/ciclo/internal/services"
)

func TestUpdateProfileComputesBMI(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "profile@example.com")

	response := env.do(t, http.MethodPut, "/api/profile", token, map[string]any{
		"name":             "Ana Clara",
		"cycle_duration":   30,
		"last_period_date": "2026-02-20",
		"height":           165,
		"weight":           60,
	})
	expectStatus(t, response, http.StatusOK)

	view := decodeBody[services.ProfileView](t, response)
	if view.Name != "Ana Clara" || view.CycleLength != 30 {
		t.Fatalf("unexpected profile: %+v", view)
	}
	if view.LastPeriodDate == nil || *view.LastPeriodDate != "2026-02-20" {
		t.Fatalf("expected last period date to be stored, got %v", view.LastPeriodDate)
	}
	if view.BMI == nil || view.BMI.Category != "Peso normal" {
		t.Fatalf("expected normal BMI, got %+v", view.BMI)
	}

	response = env.do(t, http.MethodGet, "/api/profile", token, nil)
	if got := decodeBody[services.ProfileView](t, response).Name; got != "Ana Clara" {
		t.Fatalf("expected persisted name, got %q", got)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "profile-invalid@example.com")

	cases := map[string]map[string]any{
		"short cycle":   {"cycle_duration": 10},
		"future period": {"last_period_date": "2026-03-05"},
		"bad date":      {"last_period_date": "01/02/2026"},
		"short name":    {"name": "A"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			response := env.do(t, http.MethodPut, "/api/profile", token, body)
			expectStatus(t, response, http.StatusBadRequest)
		})
	}
}

func TestPhaseWithoutCycleData(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "no-cycle@example.com")

	response := env.do(t, http.MethodGet, "/api/phase", token, nil)
	expectStatus(t, response, http.StatusOK)

	view := decodeBody[phaseView](t, response)
	if view.Configured {
		t.Fatal("expected unconfigured phase view")
	}
	for _, slot := range view.Indicator {
		if slot.Active {
			t.Fatalf("expected no active slot, got %+v", slot)
		}
	}
}

func TestPhaseMarksActiveIndicator(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "phase@example.com")

	env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"last_period_date": "2026-02-27"})

	response := env.do(t, http.MethodGet, "/api/phase", token, nil)
	expectStatus(t, response, http.StatusOK)

	view := decodeBody[phaseView](t, response)
	if !view.Configured || view.CycleDay != 3 || view.Phase != phases.Menstrual {
		t.Fatalf("expected menstrual day 3, got %+v", view)
	}
	if view.Content == nil || view.Content.ID != phases.Menstrual {
		t.Fatalf("expected menstrual content, got %+v", view.Content)
	}
	if len(view.FoodHighlights) == 0 || len(view.FoodHighlights) > foodHighlightCount {
		t.Fatalf("unexpected food highlights: %v", view.FoodHighlights)
	}

	active := 0
	for _, slot := range view.Indicator {
		if slot.Active {
			active++
			if slot.ID != phases.Menstrual {
				t.Fatalf("expected menstrual slot active, got %s", slot.ID)
			}
		}
	}
	if len(view.Indicator) != 4 || active != 1 {
		t.Fatalf("expected 4 slots with one active, got %+v", view.Indicator)
	}
}

func TestPhaseDetoxHasNoActiveSlot(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "detox@example.com")

	// Day 28 of a 28-day cycle.
	env.do(t, http.MethodPut, "/api/profile", token, map[string]any{"last_period_date": "2026-02-02"})

	view := decodeBody[phaseView](t, env.do(t, http.MethodGet, "/api/phase", token, nil))
	if view.Phase != phases.Detox {
		t.Fatalf("expected detox, got %s (day %d)", view.Phase, view.CycleDay)
	}
	for _, slot := range view.Indicator {
		if slot.Active {
			t.Fatalf("expected no active slot during detox, got %+v", slot)
		}
	}
}

func TestDashboardAggregatesTrackers(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "dashboard@example.com")

	env.do(t, http.MethodPost, "/api/hydration/increment", token, nil)
	env.do(t, http.MethodPost, "/api/checklist/2/toggle", token, nil)
	env.do(t, http.MethodPost, "/api/mood", token, map[string]any{"mood": "calm"})
	env.do(t, http.MethodPost, "/api/swelling", token, map[string]any{"level": 1})

	response := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
	expectStatus(t, response, http.StatusOK)

	view := decodeBody[dashboardView](t, response)
	if view.Greeting != "Bom dia" || view.Name != "Maria" {
		t.Fatalf("unexpected greeting: %q %q", view.Greeting, view.Name)
	}
	if view.Hydration.Glasses != 1 || view.Checklist.Completed != 1 {
		t.Fatalf("unexpected tracker state: %+v %+v", view.Hydration, view.Checklist)
	}
	if view.MoodCount != 1 || view.SwellingCount != 1 {
		t.Fatalf("expected one mood and one swelling entry, got %d and %d", view.MoodCount, view.SwellingCount)
	}
	if view.Phase.Configured {
		t.Fatal("expected unconfigured phase")
	}
	if view.Streak != 1 {
		t.Fatalf("expected streak 1 after logging today, got %d", view.Streak)
	}
}

func TestDashboardStreak(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "streak@example.com")

	streak := func() int {
		t.Helper()
		response := env.do(t, http.MethodGet, "/api/dashboard", token, nil)
		expectStatus(t, response, http.StatusOK)
		return decodeBody[dashboardView](t, response).Streak
	}

	if got := streak(); got != 0 {
		t.Fatalf("expected no streak before any entry, got %d", got)
	}

	env.do(t, http.MethodPost, "/api/hydration/increment", token, nil)
	if got := streak(); got != 1 {
		t.Fatalf("expected streak 1 with today only, got %d", got)
	}

	env.now = env.now.AddDate(0, 0, 1)
	if got := streak(); got != 1 {
		t.Fatalf("expected yesterday's streak to hold until logging, got %d", got)
	}
	env.do(t, http.MethodPost, "/api/mood", token, map[string]any{"mood": "happy"})
	if got := streak(); got != 2 {
		t.Fatalf("expected streak 2 on consecutive days, got %d", got)
	}

	env.now = env.now.AddDate(0, 0, 2)
	if got := streak(); got != 0 {
		t.Fatalf("expected a skipped day to reset the streak, got %d", got)
	}
	env.do(t, http.MethodPost, "/api/checklist/1/toggle", token, nil)
	if got := streak(); got != 1 {
		t.Fatalf("expected streak 1 after the gap, got %d", got)
	}
}

func TestGreetingByHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{hour: 0, want: "Bom dia"},
		{hour: 11, want: "Bom dia"},
		{hour: 12, want: "Boa tarde"},
		{hour: 17, want: "Boa tarde"},
		{hour: 18, want: "Boa noite"},
		{hour: 23, want: "Boa noite"},
	}
	for _, tc := range cases {
		if got := Greeting(testNow.Truncate(24 * time.Hour).Add(time.Duration(tc.hour) * time.Hour)); got != tc.want {
			t.Fatalf("hour %d: expected %q, got %q", tc.hour, tc.want, got)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestApp(t)
	token := env.register(t, "metrics@example.com")
	env.do(t, http.MethodPost, "/api/hydration/increment", token, nil)

	expectStatus(t, env.do(t, http.MethodGet, "/healthz", "", nil), http.StatusOK)

	response := env.do(t, http.MethodGet, "/metrics", "", nil)
	expectStatus(t, response, http.StatusOK)
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	body := string(raw)
	for _, want := range []string{
		`ciclo_auth_attempts_total{mode="sign_up",outcome="ok"} 1`,
		`ciclo_tracker_store_operations_total{operation="upsert",outcome="ok",table="hydration_entries"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics to contain %q", want)
		}
	}
}
