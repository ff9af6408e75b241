package storage

import (
	"context"
	"sync"
	"time"

	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/services"
	"emotrack/internal/storage/interfaces"
	"emotrack/internal/structures"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.EmotionServiceInterface
	dashboard   services.DashboardServiceInterface
	fileManager *FileManager
	seeder      *Seeder
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

// Init starts the periodic alert sweep. The store itself is written on every
// mutation, so nothing here persists.
func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Alerts.Interval
	if interval <= 0 {
		s.logger.Infof(providers.TypeApp, "Alert sweep disabled")
		return
	}

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.sweep()
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore loads the store file into the service. On first run, with
// persistence.seedOnEmpty set, a generated history is stored instead.
func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	storage, err := s.fileManager.Load()
	if err != nil {
		return err
	}

	if storage == nil {
		if !s.config.Persistence.SeedOnEmpty {
			s.logger.Infof(providers.TypeApp, "No store file at %s, starting empty", s.fileManager.Path())
			s.metrics.SetRecordsTotal(0)
			return nil
		}
		storage = &models.Storage{
			Version:        models.StorageVersion,
			Records:        s.seeder.Generate(s.service.Now()),
			ResolvedAlerts: make([]string, 0),
		}
		if err := s.fileManager.Save(storage); err != nil {
			return err
		}
		s.logger.Infof(providers.TypeApp, "Seeded %d records over %d days", len(storage.Records), s.seeder.days)
	}

	s.service.Restore(storage)
	s.metrics.SetRecordsTotal(len(storage.Records))
	s.logger.Infof(providers.TypeApp, "Restored %d records from %s", len(storage.Records), s.fileManager.Path())
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting emotion records to file...")
	err := s.fileManager.Save(s.service.Snapshot())
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	list, err := s.dashboard.OrganizationAlerts(ctx)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Alert sweep failed: %s", err)
		return
	}

	open := map[models.AlertKind]int{
		models.AlertConsecutiveNegative: 0,
		models.AlertLowTeamMorale:       0,
	}
	for _, a := range list {
		if !a.Resolved {
			open[a.Kind]++
		}
	}
	for kind, count := range open {
		s.metrics.SetOpenAlerts(string(kind), count)
	}
	s.metrics.SetRecordsTotal(s.service.Len())
	s.logger.Infof(providers.TypeApp, "Alert sweep: %d open consecutive_negative, %d open low_team_morale",
		open[models.AlertConsecutiveNegative], open[models.AlertLowTeamMorale])
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.EmotionServiceInterface, dashboard services.DashboardServiceInterface, fileManager *FileManager, seeder *Seeder, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		dashboard:   dashboard,
		fileManager: fileManager,
		seeder:      seeder,
		metrics:     metrics,
	}
}
