package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/config"
	"github.com/username/vacation-planner/internal/persistence"
	"github.com/username/vacation-planner/internal/session"
	"github.com/username/vacation-planner/internal/store"
)

var (
	configPath string
	logger     *zap.Logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vacation-planner",
		Short:         "Planificador de Vacaciones 2026",
		Long:          "Plan team vacation and personal days for 2026, track shared holidays and spot overlapping vacations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger("info") // Fallback to console
				}
			} else if err == nil {
				initLogger(cfg.Log.Level)
			} else {
				initLogger("info") // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: search config.yaml)")

	rootCmd.AddCommand(
		serveCmd(),
		usersCmd(),
		markCmd(),
		holidayCmd(),
		overlapsCmd(),
		totalsCmd(),
		summaryCmd(),
		calendarCmd(),
		exportCmd(),
		importCmd(),
	)

	return rootCmd
}

// app bundles what every command needs
type app struct {
	cfg     *config.Config
	storage store.Storage
	session *session.Session
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	storage, err := store.Open(store.Options{
		Backend:    cfg.Storage.Backend,
		Path:       cfg.Storage.Path,
		QuotaBytes: cfg.Storage.QuotaBytes,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	holidays := calendar.NewHolidaySource(cfg.Holidays.SeedFile, logger)
	gateway := persistence.NewGateway(storage, cfg.Storage.Key, holidays, logger)

	return &app{
		cfg:     cfg,
		storage: storage,
		session: session.New(ctx, gateway, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.storage.Close(); err != nil {
		logger.Warn("Failed to close storage", zap.Error(err))
	}
}

// commit saves the session unless dryRun is set
func (a *app) commit(cmd *cobra.Command, dryRun bool) error {
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "[DRY RUN] Changes were not saved")
		return nil
	}
	if err := a.session.Save(cmd.Context()); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

func initLogger(level string) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err == nil {
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
