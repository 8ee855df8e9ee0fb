package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

// NewDB abre a única conexão do processo. O arquivo local é o padrão;
// DATABASE_URL postgres é suportado para instalações em rede.
func NewDB(cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if cfg.UsesPostgres() {
		dialector = postgres.Open(cfg.DBUrl)
		log.WithField("driver", "postgres").Info("opening database")
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}

		if swapped, err := ApplyPendingRestore(cfg.DBPath); err != nil {
			return nil, err
		} else if swapped {
			log.WithField("path", cfg.DBPath).Warn("restored database from staged backup")
		}

		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
		log.WithFields(logrus.Fields{"driver": "sqlite", "path": cfg.DBPath}).Info("opening database")
	}

	return Open(dialector)
}

// SQLiteDSN liga foreign keys e espera em vez de falhar em arquivo travado.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// uma conexão longa, reutilizada pelo processo inteiro
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --------------------------------------------------
// Restore
// --------------------------------------------------

const restoreSuffix = ".restore"

func RestorePath(dbPath string) string {
	return dbPath + restoreSuffix
}

// ApplyPendingRestore troca o arquivo do banco pela cópia preparada em
// <db>.restore, antes de qualquer conexão ser aberta. O arquivo atual é
// mantido como <db>.bak-<timestamp>.
func ApplyPendingRestore(dbPath string) (bool, error) {
	staged := RestorePath(dbPath)
	if _, err := os.Stat(staged); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat staged restore: %w", err)
	}

	if _, err := os.Stat(dbPath); err == nil {
		bak := fmt.Sprintf("%s.bak-%s", dbPath, time.Now().Format("20060102150405"))
		if err := os.Rename(dbPath, bak); err != nil {
			return false, fmt.Errorf("failed to keep previous database: %w", err)
		}
	}

	// arquivos WAL da base antiga não podem ser aplicados sobre a restaurada
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dbPath + suffix)
	}

	if err := os.Rename(staged, dbPath); err != nil {
		return false, fmt.Errorf("failed to apply staged restore: %w", err)
	}

	return true, nil
}
