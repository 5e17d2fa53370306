package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathrush/internal/app"
	"github.com/abhisek/mathrush/internal/config"
	"github.com/abhisek/mathrush/internal/modes"
	"github.com/abhisek/mathrush/internal/session"
)

// appStart selects the first screen. The zero value shows the splash.
type appStart struct {
	mode  modes.Mode
	daily bool
}

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command, settings config.Settings, start appStart) error {
	st, err := openStore(cmd, settings)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(app.Options{
		Store:           st,
		HintsPerSession: settings.Hints,
		WeeklyGoal:      settings.WeeklyGoal,
		StartMode:       start.mode,
		StartDaily:      start.daily,
	})
}

// openGame opens the store and loads saved progress without starting a
// session. The caller closes both.
func openGame(cmd *cobra.Command) (*session.Game, func(), error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cmd, settings)
	if err != nil {
		return nil, nil, err
	}
	game := session.New(session.Options{
		Progress:        st.ProgressRepo(),
		Events:          st.EventRepo(),
		HintsPerSession: settings.Hints,
		WeeklyGoal:      settings.WeeklyGoal,
	})
	closeFn := func() {
		game.Close()
		st.Close()
	}
	return game, closeFn, nil
}
