package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/config"
	"github.com/abhisek/pathwise/internal/logging"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pathwise",
	Short: "Personalized learning roadmaps in your terminal",
	Long: `Pathwise profiles you with a short assessment, builds a personalized
multi-phase roadmap for a learning path, hands out daily tasks and tracks
how efficiently you complete them.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides PATHWISE_DB env var)")
	pf.String("config", "", "Path to a pathwise.yaml config file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.Uint64("seed", 0, "Seed for task generation (0 = random)")

	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if cmd.Flags().Changed("seed") {
		cfg.Engine.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path (flag, env or config
// file), then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// env is everything a command needs to work with the learner's data.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	session *session.Session
}

func (e *env) Close() {
	e.store.Close()
	_ = e.log.Sync()
}

// openEnv loads config, builds the logger, opens the store and restores the
// session. fileLog routes logs only to the configured file, for the TUI.
func openEnv(cmd *cobra.Command, fileLog bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	var log *zap.Logger
	if fileLog {
		log, err = logging.FileOnly(cfg.Log)
	} else {
		log, err = logging.New(cfg.Log)
	}
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := session.Open(ctx, st.SnapshotRepo(), st.JournalRepo(), session.Options{
		Logger:        log,
		HistorySize:   cfg.Engine.HistorySize,
		Seed:          cfg.Engine.Seed,
		KeepSnapshots: cfg.Engine.KeepSnapshots,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: st, session: sess}, nil
}
