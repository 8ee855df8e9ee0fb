package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// Paginate lista clientes mais recentes primeiro. search filtra por
// documento, nome, sobrenome, telefone ou email (case-insensitive, pela
// coluna busqueda gravada em minúsculas).
func (r *CustomerGormRepository) Paginate(
	ctx context.Context,
	search string,
	page int,
	limit int,
) ([]models.Customer, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Customer{})

	search = strings.ToLower(strings.TrimSpace(search))
	if search != "" {
		q = q.Where(`busqueda LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	return customers, total, nil
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("customer_not_found")
		}
		return nil, fmt.Errorf("failed to find customer %d: %w", id, err)
	}
	return &c, nil
}

func (r *CustomerGormRepository) FindByDocumento(ctx context.Context, documento string) (*models.Customer, error) {
	return findCustomerByDocumento(r.db.WithContext(ctx), documento)
}

func (r *CustomerGormRepository) Create(ctx context.Context, c *models.Customer) error {
	return createCustomer(r.db.WithContext(ctx), c)
}

// Update grava os campos e recalcula busqueda na mesma transação.
func (r *CustomerGormRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Customer{}).
			Where("id = ?", id).
			Updates(fields)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return httperr.DuplicateKey("document_taken", res.Error)
			}
			return fmt.Errorf("failed to update customer %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("customer_not_found")
		}

		var c models.Customer
		if err := tx.First(&c, id).Error; err != nil {
			return fmt.Errorf("failed to reload customer %d: %w", id, err)
		}
		if err := tx.Model(&c).UpdateColumn("busqueda", c.SearchKey()).Error; err != nil {
			return fmt.Errorf("failed to index customer %d: %w", id, err)
		}
		return nil
	})
}

// Delete remove o cliente sem apagar turnos: a referência nos turnos vira
// NULL na mesma transação e o nome copiado permanece.
func (r *CustomerGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Shift{}).
			Where("cliente_id = ?", id).
			Update("cliente_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach shifts from customer %d: %w", id, err)
		}

		res := tx.Delete(&models.Customer{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete customer %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return httperr.NotFound("customer_not_found")
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// --------------------------------------------------
// helpers compartilhados com o repositório de turnos
// --------------------------------------------------

func findCustomerByDocumento(db *gorm.DB, documento string) (*models.Customer, error) {
	var c models.Customer
	if err := db.Where("documento = ?", documento).First(&c).Error; err != nil {
		if isNotFound(err) {
			return nil, httperr.NotFound("customer_not_found")
		}
		return nil, fmt.Errorf("failed to find customer by document: %w", err)
	}
	return &c, nil
}

func createCustomer(db *gorm.DB, c *models.Customer) error {
	c.Busqueda = c.SearchKey()
	if err := db.Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.DuplicateKey("document_taken", err)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}
