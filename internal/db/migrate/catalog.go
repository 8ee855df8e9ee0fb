package migrate

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/setting"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CatalogOptions struct {
	AdminUsuario  string
	AdminPassword string
}

// Catalog é a lista oficial de migrações. IDs nunca são reaproveitados;
// novas alterações entram no fim com ID novo.
func Catalog(opts CatalogOptions) []Migration {
	if opts.AdminUsuario == "" {
		opts.AdminUsuario = "admin"
	}

	return []Migration{
		{ID: 1, Name: "create_base_schema", Apply: createBaseSchema},
		{ID: 2, Name: "seed_roles", Apply: seedRoles},
		{ID: 3, Name: "seed_admin_user", Apply: seedAdminUser(opts)},
		{ID: 4, Name: "seed_default_settings", Apply: seedDefaultSettings},
		{ID: 5, Name: "services_case_insensitive_unique", Apply: servicesLowerNameIndex},
		{ID: 6, Name: "shifts_fecha_index", Apply: shiftsFechaIndex},
		{ID: 7, Name: "services_nombre_key", Apply: servicesNombreKey},
		{ID: 8, Name: "customers_search_key", Apply: customersSearchKey},
	}
}

func createBaseSchema(tx *gorm.DB) error {
	m := tx.Migrator()
	for _, model := range []any{
		&models.Role{},
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Shift{},
		&models.ShiftService{},
		&models.Setting{},
		&models.AuditLog{},
	} {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

func seedRoles(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Role{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := []models.Role{
		{ID: access.LevelAdmin, Label: "Administrador", Permissions: models.Permissions{access.Wildcard}},
		{ID: access.LevelEmployee, Label: "Empleado", Permissions: access.DefaultEmployeePermissions()},
	}
	return tx.Create(&roles).Error
}

func seedAdminUser(opts CatalogOptions) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		if len(opts.AdminPassword) < auth.MinPasswordLength {
			return fmt.Errorf("initial admin password must have at least %d characters", auth.MinPasswordLength)
		}

		hash, err := auth.HashPassword(opts.AdminPassword)
		if err != nil {
			return err
		}

		return tx.Create(&models.User{
			Nombre:   "Administrador",
			Apellido: "Sistema",
			Usuario:  opts.AdminUsuario,
			Password: hash,
			Level:    access.LevelAdmin,
		}).Error
	}
}

func seedDefaultSettings(tx *gorm.DB) error {
	defaults := setting.Defaults()
	rows := make([]models.Setting, 0, len(defaults))
	for _, key := range setting.Keys() {
		rows = append(rows, models.Setting{Key: key, Value: defaults[key]})
	}

	// só insere chaves ausentes
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func servicesLowerNameIndex(tx *gorm.DB) error {
	return tx.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_services_nombre_lower ON services (lower(nombre))",
	).Error
}

func shiftsFechaIndex(tx *gorm.DB) error {
	return tx.Exec(
		"CREATE INDEX IF NOT EXISTS idx_shifts_fecha_hora ON shifts (fecha, hora)",
	).Error
}

// servicesNombreKey troca o índice em lower(nombre), que no sqlite só
// cobre ASCII, pela coluna nombre_key. Se nomes antigos colidirem, o de
// menor ID fica com a chave e os demais recebem o sufixo "#<id>".
func servicesNombreKey(tx *gorm.DB) error {
	m := tx.Migrator()
	if !m.HasColumn(&models.Service{}, "NombreKey") {
		if err := m.AddColumn(&models.Service{}, "NombreKey"); err != nil {
			return err
		}
	}

	var services []models.Service
	if err := tx.Order("id ASC").Find(&services).Error; err != nil {
		return err
	}

	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		key := models.ServiceNameKey(svc.Nombre)
		if seen[key] {
			key += "#" + strconv.FormatUint(uint64(svc.ID), 10)
		}
		seen[key] = true

		if err := tx.Model(&svc).UpdateColumn("nombre_key", key).Error; err != nil {
			return err
		}
	}

	if err := tx.Exec("DROP INDEX IF EXISTS idx_services_nombre_lower").Error; err != nil {
		return err
	}
	return tx.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_services_nombre_key ON services (nombre_key)",
	).Error
}

func customersSearchKey(tx *gorm.DB) error {
	m := tx.Migrator()
	if !m.HasColumn(&models.Customer{}, "Busqueda") {
		if err := m.AddColumn(&models.Customer{}, "Busqueda"); err != nil {
			return err
		}
	}

	var customers []models.Customer
	if err := tx.Find(&customers).Error; err != nil {
		return err
	}
	for _, c := range customers {
		if err := tx.Model(&c).UpdateColumn("busqueda", c.SearchKey()).Error; err != nil {
			return err
		}
	}
	return nil
}
