package panel

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/maruel/natural"
	"golang.org/x/sync/errgroup"

	"github.com/ayoisaiah/wellcon/internal/api"
)

// TimezoneSource resolves the timezone tasks are displayed in.
type TimezoneSource interface {
	Timezone(ctx context.Context, creds Credentials) (*time.Location, error)
}

// CheckInTimezone reads the timezone from the wellness check-in.
type CheckInTimezone struct {
	Dial Dialer
}

func (c CheckInTimezone) Timezone(
	ctx context.Context,
	creds Credentials,
) (*time.Location, error) {
	win, err := c.Dial(creds).CheckIn(ctx)
	if err != nil {
		return nil, err
	}

	return win.Location()
}

// TaskList is the data rendered by the tasks panel.
type TaskList struct {
	Date     time.Time
	Tasks    []api.Task
	Location *time.Location
	// TimezoneFallback is set when Location is the default rather than the
	// check-in timezone.
	TimezoneFallback bool
}

// Tasks loads the tasks for the selected date together with the display
// timezone. The timezone fetch is best effort.
type Tasks struct {
	loader[TaskList]
	dial     Dialer
	tz       TimezoneSource
	fallback *time.Location
	logger   *slog.Logger

	mu    sync.Mutex
	date  time.Time
	creds Credentials
}

// NewTasks returns a Tasks panel showing date. fallback is used whenever the
// timezone cannot be resolved.
func NewTasks(
	dial Dialer,
	tz TimezoneSource,
	fallback *time.Location,
	date time.Time,
	logger *slog.Logger,
) *Tasks {
	if fallback == nil {
		fallback = time.Local
	}

	if logger == nil {
		logger = slog.Default()
	}

	t := &Tasks{
		dial:     dial,
		tz:       tz,
		fallback: fallback,
		date:     date,
		logger:   logger.With("panel", "tasks"),
	}
	t.view = View[TaskList]{Phase: PhaseNeedsCredentials}

	return t
}

// Date returns the selected date.
func (t *Tasks) Date() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.date
}

// SetDate selects date and reloads with the last known credentials.
func (t *Tasks) SetDate(ctx context.Context, date time.Time) View[TaskList] {
	t.mu.Lock()
	t.date = date
	creds := t.creds
	t.mu.Unlock()

	return t.load(ctx, creds, date)
}

// Reload fetches the selected date's tasks with creds.
func (t *Tasks) Reload(ctx context.Context, creds Credentials) View[TaskList] {
	t.mu.Lock()
	t.creds = creds
	date := t.date
	t.mu.Unlock()

	return t.load(ctx, creds, date)
}

func (t *Tasks) load(
	ctx context.Context,
	creds Credentials,
	date time.Time,
) View[TaskList] {
	return t.run(ctx, creds, func(ctx context.Context) (TaskList, error) {
		list := TaskList{
			Date:             date,
			Location:         t.fallback,
			TimezoneFallback: true,
		}

		var g errgroup.Group

		g.Go(func() error {
			tasks, err := t.dial(creds).Tasks(ctx, date)
			if err != nil {
				return err
			}

			list.Tasks = tasks

			return nil
		})

		var loc *time.Location

		g.Go(func() error {
			l, err := t.tz.Timezone(ctx, creds)
			if err != nil {
				t.logger.WarnContext(
					ctx,
					"timezone unavailable, using default",
					"default", t.fallback.String(),
					"error", err,
				)

				return nil
			}

			loc = l

			return nil
		})

		if err := g.Wait(); err != nil {
			return TaskList{}, err
		}

		if loc != nil {
			list.Location = loc
			list.TimezoneFallback = false
		}

		SortTasks(list.Tasks)

		return list, nil
	})
}

// SortTasks orders tasks by start time, untimed tasks last, then by title
// in natural order.
func SortTasks(tasks []api.Task) {
	slices.SortStableFunc(tasks, func(a, b api.Task) int {
		as, aok := a.Start()
		bs, bok := b.Start()

		switch {
		case aok && !bok:
			return -1
		case !aok && bok:
			return 1
		case aok && bok && !as.Equal(bs):
			return cmp.Compare(as.UnixNano(), bs.UnixNano())
		}

		switch {
		case natural.Less(a.Title, b.Title):
			return -1
		case natural.Less(b.Title, a.Title):
			return 1
		}

		return 0
	})
}
