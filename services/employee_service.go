package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hrms/audit"
	"hrms/models"
	"hrms/tenant"
	"hrms/utils"
)

const (
	employeeNotFound  = "Employee not found."
	employeeDuplicate = "Employee with this email already exists."
)

type CreateEmployeeInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// UpdateEmployeeInput carries only the fields the caller sent. A nil field is
// left alone; so is a blank one, since every employee field is mandatory.
type UpdateEmployeeInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

type EmployeeService struct {
	db    *gorm.DB
	audit AuditRecorder
	log   logrus.FieldLogger
}

func NewEmployeeService(db *gorm.DB, recorder AuditRecorder, log logrus.FieldLogger) *EmployeeService {
	return &EmployeeService{
		db:    db,
		audit: recorder,
		log:   log,
	}
}

func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.ValidateEmail(in.Email); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	taken, err := s.emailTaken(db, tc.OrgID, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.NewConflictError(employeeDuplicate)
	}

	employee := models.Employee{
		OrganisationID: tc.OrgID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
	}
	if err := db.Create(&employee).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewConflictError(employeeDuplicate)
		}
		return nil, internal("failed to create employee", err)
	}

	s.audit.Record(ctx, audit.ActionEmployeeCreated, tc.UserID, tc.OrgID, audit.Meta{
		"employee_id": employee.ID,
		"first_name":  employee.FirstName,
	})

	return &employee, nil
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	employees := []models.Employee{}
	if err := s.db.WithContext(ctx).
		Where("organisation_id = ?", tc.OrgID).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		return nil, internal("failed to fetch employees", err)
	}

	s.audit.Record(ctx, audit.ActionEmployeesFetched, tc.UserID, tc.OrgID, audit.Meta{
		"count": len(employees),
	})

	return employees, nil
}

func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	employee, err := s.find(s.db.WithContext(ctx), tc.OrgID, id)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, audit.ActionEmployeeFetchedSingle, tc.UserID, tc.OrgID, audit.Meta{
		"employee_id": employee.ID,
	})

	return employee, nil
}

// Update applies the supplied fields and records before/after snapshots.
func (s *EmployeeService) Update(ctx context.Context, id uint, in UpdateEmployeeInput) (*models.Employee, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	employee, err := s.find(db, tc.OrgID, id)
	if err != nil {
		return nil, err
	}
	before := *employee

	if value, ok := presentValue(in.FirstName); ok {
		employee.FirstName = value
	}
	if value, ok := presentValue(in.LastName); ok {
		employee.LastName = value
	}
	if value, ok := presentValue(in.Phone); ok {
		employee.Phone = value
	}
	if value, ok := presentValue(in.Email); ok {
		value = normalizeEmail(value)
		if err := utils.ValidateEmail(value); err != nil {
			return nil, err
		}
		if value != employee.Email {
			taken, err := s.emailTaken(db, tc.OrgID, value, employee.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, utils.NewConflictError(employeeDuplicate)
			}
		}
		employee.Email = value
	}

	if err := db.Model(&models.Employee{}).Where("id = ? AND organisation_id = ?", employee.ID, tc.OrgID).Updates(map[string]interface{}{
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
		"email":      employee.Email,
		"phone":      employee.Phone,
	}).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewConflictError(employeeDuplicate)
		}
		return nil, internal("failed to update employee", err)
	}

	s.audit.Record(ctx, audit.ActionEmployeeUpdated, tc.UserID, tc.OrgID, audit.Meta{
		"employee_id": employee.ID,
		"before":      before,
		"after":       *employee,
	})

	return employee, nil
}

// Delete removes the employee. Team memberships go with it through the
// foreign key cascade.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	employee, err := s.find(db, tc.OrgID, id)
	if err != nil {
		return err
	}

	result := db.Where("id = ? AND organisation_id = ?", employee.ID, tc.OrgID).Delete(&models.Employee{})
	if result.Error != nil {
		return internal("failed to delete employee", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError(employeeNotFound)
	}

	s.audit.Record(ctx, audit.ActionEmployeeDeleted, tc.UserID, tc.OrgID, audit.Meta{
		"employee_id": employee.ID,
	})

	return nil
}

func (s *EmployeeService) find(db *gorm.DB, orgID, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := db.Where("id = ? AND organisation_id = ?", id, orgID).First(&employee).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.NewNotFoundError(employeeNotFound)
		}
		return nil, internal("failed to fetch employee", err)
	}
	return &employee, nil
}

func (s *EmployeeService) emailTaken(db *gorm.DB, orgID uint, email string, excludeID uint) (bool, error) {
	query := db.Model(&models.Employee{}).Where("organisation_id = ? AND email = ?", orgID, email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, internal("failed to check employee email", err)
	}
	return count > 0, nil
}
