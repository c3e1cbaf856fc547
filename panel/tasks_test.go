package panel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ayoisaiah/wellcon/internal/api"
)

type timezoneFunc func(ctx context.Context, creds Credentials) (*time.Location, error)

func (f timezoneFunc) Timezone(
	ctx context.Context,
	creds Credentials,
) (*time.Location, error) {
	return f(ctx, creds)
}

func taskOn(title, date, clock string) api.Task {
	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}

	return api.Task{ID: title, Title: title, Date: api.NewDate(d), Time: clock}
}

func titles(tasks []api.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}

	return out
}

var day = time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)

func TestTasksTimezoneFailureFallsBack(t *testing.T) {
	fallback := time.FixedZone("fallback", -5*3600)

	b := &fakeBackend{
		tasks: func(context.Context, time.Time) ([]api.Task, error) {
			return []api.Task{taskOn("Stretch", "2025-03-09", "08:00")}, nil
		},
	}

	tz := timezoneFunc(func(context.Context, Credentials) (*time.Location, error) {
		return nil, errors.New("check-in unavailable")
	})

	v := NewTasks(dialer(b, nil), tz, fallback, day, nil).Reload(context.Background(), devCreds)

	if v.Phase != PhaseLoaded || v.Err != nil {
		t.Fatalf("unexpected view %+v", v)
	}

	if v.Data.Location != fallback || !v.Data.TimezoneFallback {
		t.Errorf("location = %v (fallback %t), want the default zone", v.Data.Location, v.Data.TimezoneFallback)
	}

	if diff := cmp.Diff([]string{"Stretch"}, titles(v.Data.Tasks)); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestTasksUsesCheckInTimezone(t *testing.T) {
	zone := time.FixedZone("checkin", 2*3600)

	b := &fakeBackend{
		tasks: func(context.Context, time.Time) ([]api.Task, error) {
			return nil, nil
		},
	}

	tz := timezoneFunc(func(_ context.Context, creds Credentials) (*time.Location, error) {
		if creds != devCreds {
			t.Errorf("timezone fetched with %+v", creds)
		}

		return zone, nil
	})

	v := NewTasks(dialer(b, nil), tz, time.UTC, day, nil).Reload(context.Background(), devCreds)

	if v.Data.Location != zone || v.Data.TimezoneFallback {
		t.Errorf("location = %v (fallback %t), want the check-in zone", v.Data.Location, v.Data.TimezoneFallback)
	}
}

func TestTasksFailureIsSurfaced(t *testing.T) {
	errBoom := errors.New("boom")

	b := &fakeBackend{
		tasks: func(context.Context, time.Time) ([]api.Task, error) {
			return nil, errBoom
		},
	}

	tz := timezoneFunc(func(context.Context, Credentials) (*time.Location, error) {
		return time.UTC, nil
	})

	v := NewTasks(dialer(b, nil), tz, time.UTC, day, nil).Reload(context.Background(), devCreds)

	if v.Phase != PhaseFailed || !errors.Is(v.Err, errBoom) {
		t.Fatalf("unexpected view %+v", v)
	}
}

func TestTasksSetDateUsesLastCredentials(t *testing.T) {
	var dates []time.Time

	b := &fakeBackend{
		tasks: func(_ context.Context, date time.Time) ([]api.Task, error) {
			dates = append(dates, date)
			return nil, nil
		},
	}

	tz := timezoneFunc(func(context.Context, Credentials) (*time.Location, error) {
		return time.UTC, nil
	})

	var dialled []Credentials

	p := NewTasks(dialer(b, &dialled), tz, time.UTC, day, nil)

	if v := p.SetDate(context.Background(), day); v.Phase != PhaseNeedsCredentials {
		t.Fatalf("phase before credentials = %s", v.Phase)
	}

	p.Reload(context.Background(), prodCreds)

	next := day.AddDate(0, 0, 1)

	v := p.SetDate(context.Background(), next)
	if v.Phase != PhaseLoaded || !v.Data.Date.Equal(next) {
		t.Fatalf("unexpected view %+v", v)
	}

	if !p.Date().Equal(next) {
		t.Errorf("Date() = %v, want %v", p.Date(), next)
	}

	if diff := cmp.Diff([]time.Time{day, next}, dates); diff != "" {
		t.Errorf("dates mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]Credentials{prodCreds, prodCreds}, dialled); diff != "" {
		t.Errorf("dialled mismatch (-want +got):\n%s", diff)
	}
}

func TestSortTasks(t *testing.T) {
	tasks := []api.Task{
		taskOn("Walk 10", "2025-03-09", ""),
		taskOn("Lunch", "2025-03-09", "12:30:00"),
		taskOn("Walk 2", "2025-03-09", ""),
		taskOn("Breathe", "2025-03-09", "07:15"),
		taskOn("Journal", "2025-03-09", "12:30"),
	}

	SortTasks(tasks)

	want := []string{"Breathe", "Journal", "Lunch", "Walk 2", "Walk 10"}
	if diff := cmp.Diff(want, titles(tasks)); diff != "" {
		t.Errorf("SortTasks() mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckInTimezone(t *testing.T) {
	b := &fakeBackend{
		checkIn: func(context.Context) (*api.WellnessWindow, error) {
			return &api.WellnessWindow{TimezoneID: "UTC"}, nil
		},
	}

	loc, err := CheckInTimezone{Dial: dialer(b, nil)}.Timezone(context.Background(), devCreds)
	if err != nil {
		t.Fatal(err)
	}

	if loc.String() != "UTC" {
		t.Errorf("location = %s, want UTC", loc)
	}

	b.checkIn = func(context.Context) (*api.WellnessWindow, error) {
		return &api.WellnessWindow{}, nil
	}

	if _, err := (CheckInTimezone{Dial: dialer(b, nil)}).Timezone(context.Background(), devCreds); err == nil {
		t.Error("expected an error for a check-in without a timezone")
	}
}
