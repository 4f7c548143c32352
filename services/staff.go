package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant-orders-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStaffNotFound      = errors.New("staff member not found")
)

// StaffService manages staff accounts used to sign API requests
type StaffService struct {
	db *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{db: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.StaffRole
}

func (s *StaffService) Register(ctx context.Context, in RegisterInput) (*models.Staff, error) {
	if in.Role == "" {
		in.Role = models.RoleWaiter
	}
	if !in.Role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role, must be waiter or manager", ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	db := s.db.WithContext(ctx)
	var n int64
	if err := db.Model(&models.Staff{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	staff := models.Staff{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := db.Create(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &staff, nil
}

// Authenticate checks a password and returns the matching staff member
func (s *StaffService) Authenticate(ctx context.Context, email, password string) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &staff, nil
}

func (s *StaffService) Get(ctx context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := s.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, notFound(err, ErrStaffNotFound, "#%d", id)
	}
	return &staff, nil
}
