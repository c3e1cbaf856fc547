package app

import (
	"context"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/config"
	"github.com/ayoisaiah/wellcon/internal/timeutil"
	"github.com/ayoisaiah/wellcon/internal/ui"
	"github.com/ayoisaiah/wellcon/panel"
)

func (r *runtime) loadWellness(
	ctx context.Context,
	creds panel.Credentials,
) (panel.View[*api.WellnessWindow], error) {
	v := panel.NewWellness(r.dial, r.logger).Reload(ctx, creds)
	if v.Phase == panel.PhaseFailed {
		return v, v.Err
	}

	return v, nil
}

func (r *runtime) loadTasks(
	ctx context.Context,
	creds panel.Credentials,
) (panel.View[panel.TaskList], error) {
	v := r.newTasksPanel().Reload(ctx, creds)
	if v.Phase == panel.PhaseFailed {
		return v, v.Err
	}

	return v, nil
}

func (r *runtime) printWellness(v panel.View[*api.WellnessWindow]) {
	ui.PrintSection(
		"Wellness window",
		ui.WellnessRows(v.Data, r.cfg.Location(), r.cfg.Display.TwentyFourHour),
		config.Stdout,
	)
}

func (r *runtime) printTasks(v panel.View[panel.TaskList]) {
	title := "Tasks for " + timeutil.FormatDate(v.Data.Date)

	if len(v.Data.Tasks) == 0 {
		ui.PrintSection(title, [][]string{{"Nothing scheduled"}}, config.Stdout)
		return
	}

	ui.PrintSection(
		title,
		ui.TaskRows(v.Data, r.cfg.Display.TwentyFourHour),
		config.Stdout,
	)
}

// wellnessAction prints the stored check-in window.
func wellnessAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		creds, err := r.credentials(ctx)
		if err != nil {
			return err
		}

		v, err := r.loadWellness(ctx.Context, creds)
		if err != nil {
			return err
		}

		r.printWellness(v)

		return nil
	})
}

// tasksAction prints the tasks scheduled on --date.
func tasksAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		creds, err := r.credentials(ctx)
		if err != nil {
			return err
		}

		v, err := r.loadTasks(ctx.Context, creds)
		if err != nil {
			return err
		}

		r.printTasks(v)

		return nil
	})
}

// overviewAction loads the wellness window and the tasks concurrently and
// prints both.
func overviewAction(ctx *cli.Context) error {
	return withRuntime(ctx, nil, func(r *runtime) error {
		creds, err := r.credentials(ctx)
		if err != nil {
			return err
		}

		var (
			wellness panel.View[*api.WellnessWindow]
			tasks    panel.View[panel.TaskList]
		)

		g, gctx := errgroup.WithContext(ctx.Context)

		g.Go(func() error {
			var err error
			wellness, err = r.loadWellness(gctx, creds)

			return err
		})

		g.Go(func() error {
			var err error
			tasks, err = r.loadTasks(gctx, creds)

			return err
		})

		if err := g.Wait(); err != nil {
			return err
		}

		ui.PrintSection("Session", ui.SessionRows(r.reg, r.ctrl.Snapshot()), config.Stdout)
		r.printWellness(wellness)
		r.printTasks(tasks)

		return nil
	})
}
