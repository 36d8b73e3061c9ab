package diary

import (
	"sync"

	"github.com/roylee0704/gron"

	"sdd/internal/diary/interfaces"
	"sdd/internal/providers"
	"sdd/internal/structures"
)

type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	backup *BackupManager
	cron   *gron.Cron
	opsMu  sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		err := s.backup.SaveBackup(s.config.Persistence.FilePath)
		if err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while snapshotting diary blob: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Snapshotted diary blob %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.backup.RestorePrimary(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Snapshotting diary blob before shutdown...")
	err := s.backup.SaveBackup(s.config.Persistence.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while snapshotting diary blob: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, backup *BackupManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		backup: backup,
	}
}
