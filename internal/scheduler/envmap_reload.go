package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sitecue/sitecue/internal/logger"
	"github.com/sitecue/sitecue/internal/sources/envmap"
)

// EnvMapReloader handles periodic reloading of the environments file
type EnvMapReloader struct {
	loader        *envmap.Loader
	mapper        *envmap.Mapper
	envMap        *envmap.Map
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewEnvMapReloader creates a new environment map reloader
func NewEnvMapReloader(
	envFile string,
	envMap *envmap.Map,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *EnvMapReloader {
	return &EnvMapReloader{
		loader:        envmap.NewLoader(envFile),
		mapper:        envmap.NewMapper(),
		envMap:        envMap,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (er *EnvMapReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := er.Reload(ctx); err != nil {
		return fmt.Errorf("initial environment map reload failed: %w", err)
	}

	// Start periodic reload
	ticker := time.NewTicker(er.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := er.Reload(ctx); err != nil {
					er.logger.Error("failed to reload environment map",
						logger.Error(err))
				}
			case <-er.manualTrigger:
				er.logger.Info("manual environment map reload triggered")
				if err := er.Reload(ctx); err != nil {
					er.logger.Error("failed to reload environment map",
						logger.Error(err))
				}
			case <-er.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (er *EnvMapReloader) Stop() {
	close(er.stopCh)
}

// Reload loads the environments file and swaps the in-memory map.
// A failed reload keeps the previous map intact.
func (er *EnvMapReloader) Reload(_ context.Context) error {
	er.logger.Info("reloading environment map")

	config, err := er.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load environments: %w", err)
	}

	groups, err := er.mapper.MapGroups(config)
	if err != nil {
		return fmt.Errorf("failed to map environments: %w", err)
	}

	er.envMap.Update(groups)
	er.logger.Info("environment map reloaded",
		logger.Int("groups", len(groups)))

	return nil
}
