package cli

import (
	"context"
	"errors"
	"strings"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	a.printer.Error("Please log in first")
	return errNotLoggedIn
}

// Progress prints the cached progress as a table.
func (a *App) Progress(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	m, err := a.session.ProgressMap(ctx)
	if err != nil {
		a.printer.Error("Could not read progress: %v", err)
		return err
	}
	idx, err := a.session.SolvedIndex(ctx)
	if err != nil {
		a.printer.Error("Could not read solved problems: %v", err)
		return err
	}

	if len(m) == 0 && len(idx) == 0 {
		a.printer.Info("No progress yet")
		return nil
	}
	a.printer.ProgressTable(m, idx)
	return nil
}

// Solved lists the solved problem ids of one topic.
func (a *App) Solved(ctx context.Context, topicID string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	problems, err := a.session.SolvedProblems(ctx, topicID)
	if err != nil {
		a.printer.Error("Could not read solved problems: %v", err)
		return err
	}
	if len(problems) == 0 {
		a.printer.Info("No solved problems for topic %s", topicID)
		return nil
	}
	a.printer.Info("Solved in %s (%d): %s", topicID, len(problems), strings.Join(problems, ", "))
	return nil
}

// Done reports whether a topic is completed.
func (a *App) Done(ctx context.Context, topicID string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	m, err := a.session.ProgressMap(ctx)
	if err != nil {
		a.printer.Error("Could not read progress: %v", err)
		return err
	}
	if m.IsCompleted(topicID) {
		a.printer.Success("Topic %s: completed", topicID)
	} else {
		a.printer.Info("Topic %s: not completed", topicID)
	}
	return nil
}

// Refresh re-fetches progress from the server. A failed refresh keeps the
// cached progress and is not an error.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if a.progressService.Refresh(ctx) {
		a.printer.Success("Progress refreshed")
	} else {
		a.printer.Error("Could not refresh progress, showing cached data")
	}
	return nil
}

// ToggleMode flips between light and dark colors and persists the choice.
func (a *App) ToggleMode(ctx context.Context) error {
	mode, err := a.prefService.Toggle(ctx)
	if err != nil {
		a.printer.Error("Could not switch color mode: %v", err)
		return err
	}
	a.printer.SetMode(mode)
	a.printer.Success("Switched to %s mode!", mode)
	return nil
}
