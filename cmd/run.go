package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/pathwise/internal/app"
)

// runApp opens the learner's session and launches the TUI. Logs go only to
// the configured log file so they never draw over the screen.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Session:       e.session,
		Logger:        e.log,
		DefaultMonths: int(e.cfg.Engine.DefaultMonths),
	})
}
