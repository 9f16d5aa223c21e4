package services

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hrms/audit"
	"hrms/models"
	"hrms/tenant"
	"hrms/utils"
)

// Reasons reported for ids skipped by Assign and Unassign.
const (
	ReasonEmployeeNotFound = "Employee not found"
	ReasonAlreadyAssigned  = "Already assigned"
	ReasonNotAssigned      = "Not assigned"
)

const (
	teamNotFound  = "Team not found."
	teamDuplicate = "A team with this name already exists."
)

type CreateTeamInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateTeamInput carries only the fields the caller sent. A blank name is
// ignored; a blank description clears it.
type UpdateTeamInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type SkippedEmployee struct {
	EmployeeID uint   `json:"empId"`
	Reason     string `json:"reason"`
}

// AssignResult reports a partially successful batch.
type AssignResult struct {
	Assigned []uint            `json:"assigned"`
	Skipped  []SkippedEmployee `json:"skipped"`
}

type UnassignResult struct {
	Removed []uint            `json:"removed"`
	Skipped []SkippedEmployee `json:"skipped"`
}

// AssignedEmployee is the flattened view of a team member.
type AssignedEmployee struct {
	EmployeeID uint      `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	AssignedAt time.Time `json:"assigned_at"`
}

type TeamService struct {
	db    *gorm.DB
	audit AuditRecorder
	log   logrus.FieldLogger
}

func NewTeamService(db *gorm.DB, recorder AuditRecorder, log logrus.FieldLogger) *TeamService {
	return &TeamService{
		db:    db,
		audit: recorder,
		log:   log,
	}
}

func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	teams := []models.Team{}
	if err := s.db.WithContext(ctx).
		Where("organisation_id = ?", tc.OrgID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&teams).Error; err != nil {
		return nil, internal("failed to fetch teams", err)
	}

	s.audit.Record(ctx, audit.ActionTeamsFetched, tc.UserID, tc.OrgID, audit.Meta{
		"count": len(teams),
	})

	return teams, nil
}

func (s *TeamService) Create(ctx context.Context, in CreateTeamInput) (*models.Team, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return nil, utils.NewValidationError("Team name is required.")
	}

	db := s.db.WithContext(ctx)

	taken, err := s.nameTaken(db, tc.OrgID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.NewConflictError(teamDuplicate)
	}

	team := models.Team{
		OrganisationID: tc.OrgID,
		Name:           in.Name,
		Description:    in.Description,
	}
	if err := db.Create(&team).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewConflictError(teamDuplicate)
		}
		return nil, internal("failed to create team", err)
	}

	s.audit.Record(ctx, audit.ActionTeamCreated, tc.UserID, tc.OrgID, audit.Meta{
		"team_id": team.ID,
		"name":    team.Name,
	})

	return &team, nil
}

func (s *TeamService) Update(ctx context.Context, id uint, in UpdateTeamInput) (*models.Team, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	team, err := s.find(db, tc.OrgID, id)
	if err != nil {
		return nil, err
	}
	before := *team

	if name, ok := presentValue(in.Name); ok {
		if name != team.Name {
			taken, err := s.nameTaken(db, tc.OrgID, name, team.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, utils.NewConflictError("Another team with this name already exists.")
			}
		}
		team.Name = name
	}
	if in.Description != nil {
		team.Description = strings.TrimSpace(*in.Description)
	}

	if err := db.Model(&models.Team{}).Where("id = ? AND organisation_id = ?", team.ID, tc.OrgID).Updates(map[string]interface{}{
		"name":        team.Name,
		"description": team.Description,
	}).Error; err != nil {
		if isDuplicate(err) {
			return nil, utils.NewConflictError("Another team with this name already exists.")
		}
		return nil, internal("failed to update team", err)
	}

	s.audit.Record(ctx, audit.ActionTeamUpdated, tc.UserID, tc.OrgID, audit.Meta{
		"team_id": team.ID,
		"before":  before,
		"after":   *team,
	})

	return team, nil
}

func (s *TeamService) Delete(ctx context.Context, id uint) error {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	team, err := s.find(db, tc.OrgID, id)
	if err != nil {
		return err
	}

	result := db.Where("id = ? AND organisation_id = ?", team.ID, tc.OrgID).Delete(&models.Team{})
	if result.Error != nil {
		return internal("failed to delete team", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewNotFoundError(teamNotFound)
	}

	s.audit.Record(ctx, audit.ActionTeamDeleted, tc.UserID, tc.OrgID, audit.Meta{
		"team_id": team.ID,
	})

	return nil
}

// Assign adds each employee to the team. Ids that cannot be assigned are
// reported in Skipped; they never fail the batch.
func (s *TeamService) Assign(ctx context.Context, teamID uint, employeeIDs []uint) (*AssignResult, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if len(employeeIDs) == 0 {
		return nil, utils.NewValidationError("employeeId or employeeIds[] is required.")
	}

	db := s.db.WithContext(ctx)

	team, err := s.find(db, tc.OrgID, teamID)
	if err != nil {
		return nil, err
	}

	result := &AssignResult{Assigned: []uint{}, Skipped: []SkippedEmployee{}}

	for _, employeeID := range lo.Uniq(employeeIDs) {
		var employeeCount int64
		if err := db.Model(&models.Employee{}).
			Where("id = ? AND organisation_id = ?", employeeID, tc.OrgID).
			Count(&employeeCount).Error; err != nil {
			return nil, internal("failed to look up employee", err)
		}
		if employeeCount == 0 {
			result.Skipped = append(result.Skipped, SkippedEmployee{EmployeeID: employeeID, Reason: ReasonEmployeeNotFound})
			continue
		}

		var membershipCount int64
		if err := db.Model(&models.EmployeeTeam{}).
			Where("employee_id = ? AND team_id = ?", employeeID, team.ID).
			Count(&membershipCount).Error; err != nil {
			return nil, internal("failed to look up membership", err)
		}
		if membershipCount > 0 {
			result.Skipped = append(result.Skipped, SkippedEmployee{EmployeeID: employeeID, Reason: ReasonAlreadyAssigned})
			continue
		}

		membership := models.EmployeeTeam{EmployeeID: employeeID, TeamID: team.ID}
		if err := db.Create(&membership).Error; err != nil {
			// lost a race with a concurrent assignment of the same pair
			if isDuplicate(err) {
				result.Skipped = append(result.Skipped, SkippedEmployee{EmployeeID: employeeID, Reason: ReasonAlreadyAssigned})
				continue
			}
			return nil, internal("failed to assign employee", err)
		}

		result.Assigned = append(result.Assigned, employeeID)

		s.audit.Record(ctx, audit.ActionEmployeeAssigned, tc.UserID, tc.OrgID, audit.Meta{
			"employee_id": employeeID,
			"team_id":     team.ID,
		})
	}

	return result, nil
}

// Unassign removes each employee from the team, reporting ids that were not
// members in Skipped.
func (s *TeamService) Unassign(ctx context.Context, teamID uint, employeeIDs []uint) (*UnassignResult, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if len(employeeIDs) == 0 {
		return nil, utils.NewValidationError("employeeId or employeeIds[] is required.")
	}

	db := s.db.WithContext(ctx)

	team, err := s.find(db, tc.OrgID, teamID)
	if err != nil {
		return nil, err
	}

	result := &UnassignResult{Removed: []uint{}, Skipped: []SkippedEmployee{}}

	for _, employeeID := range lo.Uniq(employeeIDs) {
		deleted := db.Where("employee_id = ? AND team_id = ?", employeeID, team.ID).Delete(&models.EmployeeTeam{})
		if deleted.Error != nil {
			return nil, internal("failed to unassign employee", deleted.Error)
		}
		if deleted.RowsAffected == 0 {
			result.Skipped = append(result.Skipped, SkippedEmployee{EmployeeID: employeeID, Reason: ReasonNotAssigned})
			continue
		}

		result.Removed = append(result.Removed, employeeID)

		s.audit.Record(ctx, audit.ActionEmployeeUnassigned, tc.UserID, tc.OrgID, audit.Meta{
			"employee_id": employeeID,
			"team_id":     team.ID,
		})
	}

	return result, nil
}

// Members lists the employees assigned to a team of the caller's organisation.
func (s *TeamService) Members(ctx context.Context, teamID uint) ([]AssignedEmployee, error) {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	team, err := s.find(db, tc.OrgID, teamID)
	if err != nil {
		return nil, err
	}

	members := []AssignedEmployee{}
	if err := db.Table("employee_teams").
		Select("employees.id AS employee_id, employees.first_name, employees.last_name, employees.email, employees.phone, employee_teams.assigned_at").
		Joins("JOIN employees ON employees.id = employee_teams.employee_id").
		Where("employee_teams.team_id = ? AND employees.organisation_id = ?", team.ID, tc.OrgID).
		Order("employee_teams.assigned_at ASC").
		Order("employee_teams.id ASC").
		Scan(&members).Error; err != nil {
		return nil, internal("failed to fetch team members", err)
	}

	return members, nil
}

func (s *TeamService) find(db *gorm.DB, orgID, id uint) (*models.Team, error) {
	var team models.Team
	if err := db.Where("id = ? AND organisation_id = ?", id, orgID).First(&team).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.NewNotFoundError(teamNotFound)
		}
		return nil, internal("failed to fetch team", err)
	}
	return &team, nil
}

func (s *TeamService) nameTaken(db *gorm.DB, orgID uint, name string, excludeID uint) (bool, error) {
	query := db.Model(&models.Team{}).Where("organisation_id = ? AND name = ?", orgID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, internal("failed to check team name", err)
	}
	return count > 0, nil
}
