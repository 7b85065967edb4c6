package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopora/backend/internal/domain/shared"
	"github.com/shopora/backend/internal/domain/shared/valueobject"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusLocked   UserStatus = "locked"   // Locked due to failed login attempts
	UserStatusDisabled UserStatus = "disabled" // Disabled by an administrator
)

// UserRole represents the role of a user
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// Password cost for bcrypt
const bcryptCost = 12

// User represents a registered shopper or administrator
// It is the aggregate root for account operations
type User struct {
	shared.BaseAggregateRoot
	Email          string        `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash   string        `gorm:"type:varchar(100);not null"`
	FirstName      string        `gorm:"type:varchar(100);not null"`
	LastName       string        `gorm:"type:varchar(100);not null"`
	Phone          string        `gorm:"type:varchar(30)"`
	Role           UserRole      `gorm:"type:varchar(20);not null;default:'customer'"`
	Status         UserStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Addresses      []UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	LastLoginAt    *time.Time    `gorm:""`
	FailedAttempts int           `gorm:"not null;default:0"`
	LockedUntil    *time.Time    `gorm:""`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserAddress is a saved shipping address owned by a user
type UserAddress struct {
	shared.BaseEntity
	UserID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	Label     string              `gorm:"type:varchar(50)"`
	Address   valueobject.Address `gorm:"type:jsonb"`
	IsDefault bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserAddress) TableName() string {
	return "user_addresses"
}

// NewUser creates a new customer account
func NewUser(email, password, firstName, lastName string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateName(firstName, "First name"); err != nil {
		return nil, err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		Role:              RoleCustomer,
		Status:            UserStatusActive,
		Addresses:         make([]UserAddress, 0),
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// NewAdminUser creates a new administrator account
func NewAdminUser(email, password, firstName, lastName string) (*User, error) {
	user, err := NewUser(email, password, firstName, lastName)
	if err != nil {
		return nil, err
	}

	user.Role = RoleAdmin
	return user, nil
}

// UpdateProfile updates the user's profile fields
func (u *User) UpdateProfile(firstName, lastName, phone string) error {
	if err := validateName(firstName, "First name"); err != nil {
		return err
	}
	if err := validateName(lastName, "Last name"); err != nil {
		return err
	}
	if phone != "" && len(phone) > 30 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 30 characters")
	}

	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Phone = strings.TrimSpace(phone)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the user's password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one (admin reset)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// AddAddress adds a saved shipping address
// The first address automatically becomes the default
func (u *User) AddAddress(label string, address valueobject.Address, isDefault bool) (*UserAddress, error) {
	if address.IsEmpty() {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	if len(label) > 50 {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address label cannot exceed 50 characters")
	}

	if len(u.Addresses) == 0 {
		isDefault = true
	}
	if isDefault {
		for i := range u.Addresses {
			u.Addresses[i].IsDefault = false
		}
	}

	entry := UserAddress{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     u.ID,
		Label:      strings.TrimSpace(label),
		Address:    address,
		IsDefault:  isDefault,
	}
	u.Addresses = append(u.Addresses, entry)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return &u.Addresses[len(u.Addresses)-1], nil
}

// RemoveAddress removes a saved address by ID
func (u *User) RemoveAddress(addressID uuid.UUID) error {
	for i, addr := range u.Addresses {
		if addr.ID == addressID {
			wasDefault := addr.IsDefault
			u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
			if wasDefault && len(u.Addresses) > 0 {
				u.Addresses[0].IsDefault = true
			}
			u.UpdatedAt = time.Now()
			u.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// DefaultAddress returns the default saved address, or nil if none exist
func (u *User) DefaultAddress() *UserAddress {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}

// Disable disables the account
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "User is already disabled")
	}

	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserDisabledEvent(u))

	return nil
}

// Enable re-enables a disabled or locked account
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt
// Returns true if the account was locked as a result
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= maxAttempts {
		u.Status = UserStatusLocked
		if lockDuration > 0 {
			lockedUntil := time.Now().Add(lockDuration)
			u.LockedUntil = &lockedUntil
		}
		return true
	}

	return false
}

// IsLocked returns true if the account is locked and the lock has not expired
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}
	return true
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin returns true if the account is allowed to log in
func (u *User) CanLogin() bool {
	if u.Status == UserStatusDisabled {
		return false
	}
	return !u.IsLocked()
}

// FullName returns the user's full name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Validation functions

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func validateName(name, field string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", field+" cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", field+" cannot exceed 100 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
