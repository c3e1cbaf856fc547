package app

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/gen2brain/beeep"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/wellcon/internal/api"
	"github.com/ayoisaiah/wellcon/internal/config"
	"github.com/ayoisaiah/wellcon/internal/ui"
	"github.com/ayoisaiah/wellcon/panel"
	"github.com/ayoisaiah/wellcon/report"
)

const skipScore = "skip"

var (
	brainDumpFlag = &cli.StringFlag{
		Name:    "text",
		Aliases: []string{"t"},
		Usage:   "Brain dump text. Prompts for the text and scores when omitted",
	}

	moodFlag = &cli.IntFlag{
		Name:  "mood",
		Usage: "Mood score from 0 to 10",
	}

	stressFlag = &cli.IntFlag{
		Name:  "stress",
		Usage: "Stress score from 0 to 10",
	}

	purposeFlag = &cli.IntFlag{
		Name:  "purpose",
		Usage: "Sense of purpose score from 0 to 10",
	}

	addFlag = &cli.IntSliceFlag{
		Name:  "add",
		Usage: "Add the suggestions with these numbers to the calendar",
	}
)

func scoreOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Skip", skipScore)}

	for i := 0; i <= 10; i++ {
		s := strconv.Itoa(i)
		opts = append(opts, huh.NewOption(s, s))
	}

	return opts
}

func parseScore(s string) *int {
	if s == skipScore || s == "" {
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}

	return &n
}

func scoreFlag(ctx *cli.Context, name string) *int {
	if !ctx.IsSet(name) {
		return nil
	}

	n := ctx.Int(name)

	return &n
}

// promptBrainDump collects the brain dump and optional scores.
func promptBrainDump() (api.BrainDumpRequest, error) {
	var text, mood, stress, purpose string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What's on your mind?").
				Value(&text),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mood").
				Options(scoreOptions()...).
				Value(&mood),
			huh.NewSelect[string]().
				Title("Stress").
				Options(scoreOptions()...).
				Value(&stress),
			huh.NewSelect[string]().
				Title("Sense of purpose").
				Options(scoreOptions()...).
				Value(&purpose),
		),
	)

	if err := form.Run(); err != nil {
		return api.BrainDumpRequest{}, err
	}

	return api.BrainDumpRequest{
		Text:    text,
		Mood:    parseScore(mood),
		Stress:  parseScore(stress),
		Purpose: parseScore(purpose),
	}, nil
}

// pickSuggestions asks which suggestions to schedule and returns their
// zero-based indices.
func pickSuggestions(res *api.SuggestionResponse) ([]int, error) {
	opts := make([]huh.Option[int], 0, len(res.SuggestedActivities))

	for i, s := range res.SuggestedActivities {
		opts = append(opts, huh.NewOption(s.Title, i))
	}

	var picked []int

	err := huh.NewMultiSelect[int]().
		Title("Add to calendar").
		Options(opts...).
		Value(&picked).
		Run()

	return picked, err
}

// suggestAction submits a brain dump, prints the suggested activities and
// adds the chosen ones to the calendar.
func suggestAction(ctx *cli.Context) error {
	req := api.BrainDumpRequest{
		Text:    ctx.String("text"),
		Mood:    scoreFlag(ctx, "mood"),
		Stress:  scoreFlag(ctx, "stress"),
		Purpose: scoreFlag(ctx, "purpose"),
	}

	interactive := req.Text == ""

	if interactive {
		var err error

		req, err = promptBrainDump()
		if err != nil {
			return err
		}
	}

	if err := req.Validate(); err != nil {
		return err
	}

	return withRuntime(ctx, nil, func(r *runtime) error {
		creds, err := r.credentials(ctx)
		if err != nil {
			return err
		}

		suggestions := panel.NewSuggestions(r.dial, r.logger)
		suggestions.Reload(ctx.Context, creds)

		v := suggestions.Generate(ctx.Context, creds, req)
		if v.Phase == panel.PhaseFailed {
			return v.Err
		}

		if v.Data == nil {
			v.Data = &api.SuggestionResponse{}
		}

		ui.PrintSection("Suggestions", ui.SuggestionRows(v.Data), config.Stdout)

		if len(v.Data.KeyThemes) > 0 {
			report.Info(config.Stdout, "key themes: %v", v.Data.KeyThemes)
		}

		var picked []int

		if interactive && len(v.Data.SuggestedActivities) > 0 {
			picked, err = pickSuggestions(v.Data)
			if err != nil {
				return err
			}
		} else {
			for _, n := range ctx.IntSlice("add") {
				picked = append(picked, n-1)
			}
		}

		for _, i := range picked {
			task, err := suggestions.Add(ctx.Context, creds, i)
			if err != nil {
				return err
			}

			report.Success(config.Stdout, "added %q to the calendar", task.Title)
		}

		if len(picked) > 0 && r.cfg.Notifications.Enabled {
			msg := fmt.Sprintf("%d activities added to your calendar", len(picked))

			if err := beeep.Notify("wellcon", msg, ""); err != nil {
				r.logger.Warn("notification failed", "error", err)
				report.Warn(config.Stdout, "desktop notification failed: %v", err)
			}
		}

		return nil
	})
}
