package migrate

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Migration descreve uma alteração de schema/dados. Apply recebe a
// transação que também grava a linha do ledger; deve ser segura para
// reexecução dentro dela (create if not exists, seed se vazio).
type Migration struct {
	ID    int
	Name  string
	Apply func(tx *gorm.DB) error
}

type Runner struct {
	db         *gorm.DB
	migrations []Migration
	log        logrus.FieldLogger
}

func NewRunner(db *gorm.DB, migrations []Migration, log logrus.FieldLogger) *Runner {
	return &Runner{
		db:         db,
		migrations: migrations,
		log:        log,
	}
}

// Run aplica, em ordem crescente de ID, cada migração ainda ausente do
// ledger. Cada uma roda em sua própria transação junto com o insert no
// ledger. Qualquer erro é fatal: o host não deve servir requisições.
func (r *Runner) Run(ctx context.Context) (int, error) {
	ordered, err := sortMigrations(r.migrations)
	if err != nil {
		return 0, err
	}

	db := r.db.WithContext(ctx)

	if err := db.AutoMigrate(&models.Migration{}); err != nil {
		return 0, httperr.Fatal("migration_failed", fmt.Errorf("failed to create ledger: %w", err))
	}

	applied, err := r.appliedIDs(db)
	if err != nil {
		return 0, httperr.Fatal("migration_failed", err)
	}

	ran := 0
	for _, m := range ordered {
		if applied[m.ID] {
			continue
		}

		entry := r.log.WithFields(logrus.Fields{"migration_id": m.ID, "migration": m.Name})
		entry.Info("applying migration")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Apply(tx); err != nil {
				return err
			}
			return tx.Create(&models.Migration{
				ID:        m.ID,
				Name:      m.Name,
				AppliedAt: timezone.Now(),
			}).Error
		})
		if err != nil {
			entry.WithError(err).Error("migration failed, rolled back")
			return ran, httperr.Fatal(
				"migration_failed",
				fmt.Errorf("migration %d (%s): %w", m.ID, m.Name, err),
			)
		}

		ran++
	}

	if ran > 0 {
		r.log.WithField("count", ran).Info("migrations applied")
	} else {
		r.log.Debug("database schema is up to date")
	}

	return ran, nil
}

func (r *Runner) appliedIDs(db *gorm.DB) (map[int]bool, error) {
	var ids []int
	if err := db.Model(&models.Migration{}).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	applied := make(map[int]bool, len(ids))
	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}

func sortMigrations(in []Migration) ([]Migration, error) {
	out := make([]Migration, len(in))
	copy(out, in)

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	for i := 1; i < len(out); i++ {
		if out[i].ID == out[i-1].ID {
			return nil, httperr.Fatal(
				"duplicate_migration_id",
				fmt.Errorf("migration id %d declared twice", out[i].ID),
			)
		}
	}
	return out, nil
}
