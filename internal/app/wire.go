//go:build wireinject
// +build wireinject

package app

import (
	"log"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"scamshield/internal/app/analyzer"
	appconfig "scamshield/internal/app/config"
	"scamshield/internal/app/engine"
	applog "scamshield/internal/app/logger"
	"scamshield/internal/app/repository"
	"scamshield/internal/app/repository/sqlite"
	"scamshield/internal/config"
)

func provideSettings() *config.Settings {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("failed to load environment: %v", err)
	}
	settings, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return settings
}

func provideLogger(settings *config.Settings) *zap.Logger {
	return applog.MustNewLogger(settings.Development)
}

// provideEnginesConfig loads the engines file when one exists and otherwise
// falls back to the built-in defaults.
func provideEnginesConfig(logger *zap.Logger) *appconfig.EnginesConfig {
	path := appconfig.GetDefaultConfigPath()
	cfg, err := appconfig.LoadEnginesConfig(path)
	if err != nil {
		logger.Debug("engines config not loaded, using defaults",
			zap.String("path", path), zap.Error(err))
		return appconfig.CreateDefaultConfig()
	}
	return cfg
}

// provideOrchestrator builds the engine set through the creator registry, in
// fallback-chain order. An engine that cannot be configured is still built;
// availability is decided at probe time, not construction time.
func provideOrchestrator(settings *config.Settings, logger *zap.Logger) *engine.Orchestrator {
	cfg := provideEnginesConfig(logger)

	engines := make([]engine.Engine, 0, len(cfg.Engines))
	for _, name := range cfg.Orchestrator.FallbackChain {
		engineCfg, ok := cfg.Engines[name]
		if !ok || !engineCfg.Enabled {
			continue
		}
		creator, err := engine.GetCreator(engineCfg.Type)
		if err != nil {
			logger.Warn("skipping unregistered engine",
				zap.String("engine", name), zap.Error(err))
			continue
		}
		eng, err := creator(mergeEngineSettings(engineCfg))
		if err != nil {
			logger.Warn("failed to build engine",
				zap.String("engine", name), zap.Error(err))
			continue
		}
		engines = append(engines, eng)
	}

	cache := engine.NewAvailabilityCache(
		time.Duration(cfg.Orchestrator.ProbeTTLSec)*time.Second,
		time.Duration(cfg.Orchestrator.ProbeTimeoutSec)*time.Second,
	)
	return engine.NewOrchestrator(engines, cfg.Orchestrator.FallbackChain, cache, settings.TranscribeTimeout, logger)
}

// mergeEngineSettings flattens an engine's auth block into its settings map
// for the creator.
func mergeEngineSettings(engineCfg appconfig.EngineConfig) map[string]interface{} {
	merged := make(map[string]interface{}, len(engineCfg.Settings)+len(engineCfg.Auth))
	for k, v := range engineCfg.Settings {
		merged[k] = v
	}
	for k, v := range engineCfg.Auth {
		merged[k] = v
	}
	return merged
}

func provideHistory(settings *config.Settings) *analyzer.History {
	return analyzer.NewHistory(settings.HistoryCapacity)
}

func provideVerdictDAO(settings *config.Settings) repository.VerdictDAO {
	store, err := sqlite.NewVerdictStore(settings.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open verdict store: %v", err)
	}
	return store
}

func InitializeAnalyzer() *analyzer.Analyzer {
	wire.Build(
		analyzer.New,
		provideSettings,
		provideLogger,
		provideOrchestrator,
		provideHistory,
		provideVerdictDAO,
	)
	return &analyzer.Analyzer{}
}
