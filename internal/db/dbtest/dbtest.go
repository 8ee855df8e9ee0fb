// Package dbtest abre bancos sqlite temporários para os testes.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/migrate"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

const (
	AdminUsuario  = "admin"
	AdminPassword = "admin123"
)

// Path devolve o caminho de um arquivo de banco dentro do TempDir do teste.
func Path(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

// OpenAt abre (sem migrar) o banco no caminho indicado.
func OpenAt(t testing.TB, path string) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(sqlite.Open(db.SQLiteDSN(path)))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// Empty abre um banco novo, sem nenhuma migração.
func Empty(t testing.TB) *gorm.DB {
	t.Helper()
	return OpenAt(t, Path(t))
}

// Migrated abre um banco novo com o catálogo completo aplicado.
func Migrated(t testing.TB) *gorm.DB {
	t.Helper()
	return MigratedAt(t, Path(t))
}

// MigratedAt é Migrated num caminho escolhido pelo teste.
func MigratedAt(t testing.TB, path string) *gorm.DB {
	t.Helper()

	gdb := OpenAt(t, path)
	_, err := migrate.NewRunner(gdb, migrate.Catalog(migrate.CatalogOptions{
		AdminUsuario:  AdminUsuario,
		AdminPassword: AdminPassword,
	}), logging.Discard()).Run(context.Background())
	require.NoError(t, err)

	return gdb
}
