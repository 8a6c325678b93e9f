package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterStaffInput struct {
	RestaurantID *string `json:"restaurant_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
}

type LoginResult struct {
	Token        string  `json:"token"`
	UserID       string  `json:"user_id"`
	Role         string  `json:"user_role"`
	RestaurantID *string `json:"restaurant_id"`
}

// StaffService handles staff accounts and sign-in. Staff rows are not part
// of the change feed, so it talks to the database directly.
type StaffService struct {
	DB *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db}
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleKitchen, models.RoleWaiter, models.RoleBilling, models.RoleSuperAdmin:
		return true
	}
	return false
}

func (s *StaffService) Register(ctx context.Context, in RegisterStaffInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(in.Role)

	var c check
	c.require(in.Name != "", "name")
	c.require(strings.Contains(in.Email, "@"), "email")
	c.require(len(in.Password) >= 6, "password")
	c.require(validRole(in.Role), "role")
	c.require(in.Role == models.RoleSuperAdmin || (in.RestaurantID != nil && *in.RestaurantID != ""), "restaurant_id")
	if err := c.err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		Email:        in.Email,
		Password:     string(hashed),
		Role:         in.Role,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("register staff: %w", err)
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)
	return &user, nil
}

// Login checks the password and issues a token carrying the user's tenant
// and role.
func (s *StaffService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tenant := ""
	if user.RestaurantID != nil {
		tenant = *user.RestaurantID
	}
	token, err := utils.GenerateToken(user.ID, tenant, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)
	return &LoginResult{
		Token:        token,
		UserID:       user.ID,
		Role:         user.Role,
		RestaurantID: user.RestaurantID,
	}, nil
}

func (s *StaffService) Profile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns staff of one tenant, or every account when restaurantID is
// empty.
func (s *StaffService) List(ctx context.Context, restaurantID string) ([]models.User, error) {
	users := []models.User{}
	tx := s.DB.WithContext(ctx).Order("name")
	if restaurantID != "" {
		tx = tx.Where("restaurant_id = ?", restaurantID)
	}
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// EnsureSuperAdmin creates the platform account for email unless one with
// that email already exists.
func (s *StaffService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&n).Error
	if err != nil {
		return fmt.Errorf("look up super admin: %w", err)
	}
	if n > 0 {
		return nil
	}
	_, err = s.Register(ctx, RegisterStaffInput{
		Name:     "Super Admin",
		Email:    email,
		Password: password,
		Role:     models.RoleSuperAdmin,
	})
	return err
}
