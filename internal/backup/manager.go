package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"todo-backend/internal/storage"
)

// Manager periodically snapshots the sqlite database and uploads the
// snapshot to object storage.
type Manager interface {
	Start(ctx context.Context) error
	Shutdown()
	RunOnce(ctx context.Context) error
}

type Config struct {
	Bucket    string
	KeyPrefix string
	Interval  time.Duration
	Logger    *logrus.Logger
}

type manager struct {
	cfg     Config
	db      *sql.DB
	storage storage.Service

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewManager(cfg Config, db *sql.DB, store storage.Service) Manager {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &manager{
		cfg:     cfg,
		db:      db,
		storage: store,
	}
}

func (m *manager) Start(ctx context.Context) error {
	if m.cfg.Bucket == "" {
		return fmt.Errorf("backup bucket is required")
	}

	m.ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.ctx.Done():
				return
			case <-ticker.C:
				if err := m.RunOnce(m.ctx); err != nil {
					m.cfg.Logger.Warnf("database backup: %v", err)
				}
			}
		}
	}()

	m.cfg.Logger.Infof("backup manager started, interval %s", m.cfg.Interval)
	return nil
}

func (m *manager) Shutdown() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.cfg.Logger.Info("backup manager stopped")
}

// RunOnce takes a consistent snapshot via VACUUM INTO and uploads it.
func (m *manager) RunOnce(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "todo-backup-*")
	if err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	defer os.RemoveAll(dir)

	snapshot := filepath.Join(dir, "snapshot.db")
	if _, err := m.db.ExecContext(ctx, `VACUUM INTO ?`, snapshot); err != nil {
		return fmt.Errorf("snapshot database: %w", err)
	}

	key := fmt.Sprintf("%s/%s.db", m.cfg.KeyPrefix, time.Now().UTC().Format("20060102T150405Z"))
	location, err := m.storage.UploadFile(ctx, m.cfg.Bucket, key, snapshot)
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	m.cfg.Logger.Infof("database backup uploaded to %s", location)
	return nil
}
