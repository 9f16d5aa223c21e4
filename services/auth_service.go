package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hrms/audit"
	"hrms/models"
	"hrms/tenant"
	"hrms/utils"
)

const invalidCredentials = "Invalid credentials."

type RegisterInput struct {
	OrgName   string `json:"orgName" validate:"required"`
	AdminName string `json:"adminName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	OrgName  string `json:"orgName" validate:"required"`
}

type AuthResult struct {
	Token  string `json:"token"`
	UserID uint   `json:"userId"`
	OrgID  uint   `json:"orgId"`
}

type AuthService struct {
	db       *gorm.DB
	tokens   *utils.TokenService
	audit    AuditRecorder
	log      logrus.FieldLogger
	hashCost int
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenService, recorder AuditRecorder, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		db:       db,
		tokens:   tokens,
		audit:    recorder,
		log:      log,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates an organisation together with its first user and signs
// that user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.OrgName = strings.TrimSpace(in.OrgName)
	in.AdminName = strings.TrimSpace(in.AdminName)
	in.Email = normalizeEmail(in.Email)

	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if err := utils.ValidateEmail(in.Email); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var existing models.User
	err := db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, utils.NewValidationError("Email already exists.")
	}
	if !isNotFound(err) {
		return nil, internal("failed to look up user", err)
	}

	var orgCount int64
	if err := db.Model(&models.Organisation{}).Where("name = ?", in.OrgName).Count(&orgCount).Error; err != nil {
		return nil, internal("failed to look up organisation", err)
	}
	if orgCount > 0 {
		return nil, utils.NewConflictError("Organisation already exists.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, internal("failed to hash password", err)
	}

	org := models.Organisation{Name: in.OrgName}
	user := models.User{
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Name:         in.AdminName,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		user.OrganisationID = org.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, utils.NewConflictError("Organisation or email already exists.")
		}
		return nil, internal("failed to register organisation", err)
	}

	token, err := s.tokens.Issue(user.ID, org.ID)
	if err != nil {
		return nil, internal("failed to issue token", err)
	}

	s.audit.Record(ctx, audit.ActionOrganisationRegistered, user.ID, org.ID, audit.Meta{
		"userId":  user.ID,
		"orgId":   org.ID,
		"orgName": org.Name,
	})

	return &AuthResult{Token: token, UserID: user.ID, OrgID: org.ID}, nil
}

// Login authenticates by (email, password, organisation name). Unknown users
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.OrgName = strings.TrimSpace(in.OrgName)

	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var org models.Organisation
	if err := db.Where("name = ?", in.OrgName).First(&org).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.NewNotFoundError("Organisation not found.")
		}
		return nil, internal("failed to look up organisation", err)
	}

	var user models.User
	if err := db.Where("email = ? AND organisation_id = ?", in.Email, org.ID).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, utils.NewValidationError(invalidCredentials)
		}
		return nil, internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, utils.NewValidationError(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, org.ID)
	if err != nil {
		return nil, internal("failed to issue token", err)
	}

	s.audit.Record(ctx, audit.ActionUserLoggedIn, user.ID, org.ID, audit.Meta{
		"email":  user.Email,
		"userId": user.ID,
	})

	return &AuthResult{Token: token, UserID: user.ID, OrgID: org.ID}, nil
}

// Logout only records the event. Tokens stay valid until they expire; the
// client is expected to discard its copy.
func (s *AuthService) Logout(ctx context.Context) error {
	tc, err := tenant.Require(ctx)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, audit.ActionUserLoggedOut, tc.UserID, tc.OrgID, audit.Meta{
		"userId": tc.UserID,
	})
	return nil
}
