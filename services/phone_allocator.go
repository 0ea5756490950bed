package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/aoifenolan/bookhive-app/models"
	"gorm.io/gorm"
)

// PhoneAllocator hands out numbers from the shared pool. The claim itself is
// a conditional UPDATE gated on the row still being available, so two racing
// Assign calls for the same number can never both win: the loser sees zero
// rows affected and gets ErrNumberUnavailable.
type PhoneAllocator struct {
	db *gorm.DB
}

func NewPhoneAllocator(db *gorm.DB) *PhoneAllocator {
	return &PhoneAllocator{db: db}
}

// ListAvailable returns every unassigned number, oldest import first.
func (s *PhoneAllocator) ListAvailable() ([]models.PhoneNumber, error) {
	var numbers []models.PhoneNumber
	err := s.db.Where("status = ?", models.PhoneNumberAvailable).
		Order("created_at ASC, id ASC").
		Find(&numbers).Error
	return numbers, err
}

// Current returns the number held by the tenant, or nil if it holds none.
func (s *PhoneAllocator) Current(tenantID uint) (*models.PhoneNumber, error) {
	var number models.PhoneNumber
	err := s.db.Where("assigned_tenant_id = ?", tenantID).First(&number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// Assign claims a number for the tenant. With requested empty the oldest
// available number is taken; otherwise exactly that number is claimed. The
// number claim and the tenant record update commit in one transaction, so a
// half-assigned state is never observable.
func (s *PhoneAllocator) Assign(tenantID uint, requested string) (*models.PhoneNumber, error) {
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	var tenant models.Tenant
	if err := tx.First(&tenant, tenantID).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	if tenant.AssignedPhoneNumber != nil {
		tx.Rollback()
		return nil, ErrAlreadyAssigned
	}

	var number *models.PhoneNumber
	var err error
	if requested != "" {
		number, err = s.claim(tx, tenantID, requested)
	} else {
		number, err = s.claimNext(tx, tenantID)
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Conditional write on the tenant side as well: if a concurrent Assign
	// for the same tenant commits first, this affects zero rows.
	res := tx.Model(&models.Tenant{}).
		Where("id = ? AND assigned_phone_number IS NULL", tenantID).
		Update("assigned_phone_number", number.Number)
	if res.Error != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to update tenant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrAlreadyAssigned
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}
	return number, nil
}

// claim flips one specific number from available to assigned. The WHERE on
// status makes the update a compare-and-swap: losing a race, or requesting a
// number that never existed, both surface as ErrNumberUnavailable.
func (s *PhoneAllocator) claim(tx *gorm.DB, tenantID uint, requested string) (*models.PhoneNumber, error) {
	now := time.Now()
	res := tx.Model(&models.PhoneNumber{}).
		Where("number = ? AND status = ?", requested, models.PhoneNumberAvailable).
		Updates(map[string]interface{}{
			"status":             models.PhoneNumberAssigned,
			"assigned_tenant_id": tenantID,
			"assigned_at":        now,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to claim number: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNumberUnavailable
	}

	var number models.PhoneNumber
	if err := tx.Where("number = ?", requested).First(&number).Error; err != nil {
		return nil, fmt.Errorf("failed to reload claimed number: %w", err)
	}
	return &number, nil
}

// claimNext walks the available numbers oldest-first and takes the first one
// whose claim succeeds. Candidates lost to concurrent claims are skipped.
func (s *PhoneAllocator) claimNext(tx *gorm.DB, tenantID uint) (*models.PhoneNumber, error) {
	var candidates []models.PhoneNumber
	if err := tx.Where("status = ?", models.PhoneNumberAvailable).
		Order("created_at ASC, id ASC").
		Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to list available numbers: %w", err)
	}

	for _, candidate := range candidates {
		number, err := s.claim(tx, tenantID, candidate.Number)
		if errors.Is(err, ErrNumberUnavailable) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return number, nil
	}
	return nil, ErrPoolExhausted
}

// ImportNumbers bulk-loads numbers into the pool. Existing numbers are left
// untouched; the count of newly added rows is returned.
func (s *PhoneAllocator) ImportNumbers(numbers []string) (int, error) {
	added := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, n := range numbers {
			var count int64
			if err := tx.Model(&models.PhoneNumber{}).Where("number = ?", n).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			row := models.PhoneNumber{
				Number: n,
				Status: models.PhoneNumberAvailable,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			added++
		}
		return nil
	})
	return added, err
}

// ResetPool is the administrative escape hatch: every number goes back to
// available and every tenant loses its number, in one transaction. There is
// no per-number release in normal operation.
func (s *PhoneAllocator) ResetPool() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PhoneNumber{}).
			Where("status = ?", models.PhoneNumberAssigned).
			Updates(map[string]interface{}{
				"status":             models.PhoneNumberAvailable,
				"assigned_tenant_id": nil,
				"assigned_at":        nil,
			}).Error; err != nil {
			return fmt.Errorf("failed to reset pool: %w", err)
		}
		if err := tx.Model(&models.Tenant{}).
			Where("assigned_phone_number IS NOT NULL").
			Update("assigned_phone_number", nil).Error; err != nil {
			return fmt.Errorf("failed to clear tenant numbers: %w", err)
		}
		return nil
	})
}
