package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"retail-pos-backend/internal/models"
	"retail-pos-backend/internal/services/alerts"
	"retail-pos-backend/internal/services/backup"
)

// Scheduler owns the periodic jobs: the daily low-stock check and the
// weekly automatic backup.
type Scheduler struct {
	cron    *cron.Cron
	db      *gorm.DB
	alerts  *alerts.Service
	backups *backup.Service
}

func New(db *gorm.DB, alertSvc *alerts.Service, backupSvc *backup.Service) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		db:      db,
		alerts:  alertSvc,
		backups: backupSvc,
	}
}

// Start registers the jobs and launches the cron runner.
func (s *Scheduler) Start() {
	// Daily at 09:00
	if _, err := s.cron.AddFunc("0 9 * * *", s.RunLowStockCheck); err != nil {
		zap.S().Errorf("failed to schedule low stock check: %v", err)
	}
	// Weekly, Sunday at 02:00
	if _, err := s.cron.AddFunc("0 2 * * 0", s.RunAutomaticBackup); err != nil {
		zap.S().Errorf("failed to schedule automatic backup: %v", err)
	}
	s.cron.Start()
	zap.S().Info("schedulers started: low stock check (daily 09:00), backup (Sunday 02:00)")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RunLowStockCheck scans all shops and alerts verified owners.
func (s *Scheduler) RunLowStockCheck() {
	sent, err := s.alerts.CheckLowStock(nil)
	if err != nil {
		zap.S().Errorf("low stock check failed: %v", err)
		return
	}
	zap.S().Infof("low stock check completed, alerts sent: %d", sent)
}

// RunAutomaticBackup creates a full-database backup and emails the
// result to every verified user.
func (s *Scheduler) RunAutomaticBackup() {
	record, err := s.backups.Create(nil, true)
	if err != nil {
		zap.S().Errorf("automatic backup failed: %v", err)
	}
	if record == nil {
		return
	}

	var users []models.User
	if err := s.db.Where("is_verified = ?", true).Find(&users).Error; err != nil {
		zap.S().Errorf("failed to list users for backup notification: %v", err)
		return
	}
	for _, user := range users {
		if err := s.alerts.SendBackupResult(user.Email, record); err != nil {
			zap.S().Errorf("backup notification to %s failed: %v", user.Email, err)
		}
	}
	zap.S().Infof("automatic backup completed: %s", record.FileName)
}
