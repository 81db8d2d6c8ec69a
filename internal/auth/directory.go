package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/ukydev/moto-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Directory holds API users in memory for the lifetime of the process.
type Directory struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewDirectory creates an empty user directory
func NewDirectory() *Directory {
	return &Directory{users: make(map[string]*models.User)}
}

// AddUser validates the credentials, hashes the password and stores the user
func (d *Directory) AddUser(s *Service, username, password string, role models.Role) (*models.User, error) {
	if err := s.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(password); err != nil {
		return nil, err
	}
	if !models.IsValidRole(role) {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.users[username]; exists {
		return nil, fmt.Errorf("username %q already exists", username)
	}
	d.users[username] = user
	return user, nil
}

// FindUserByUsername returns a copy of the named user
func (d *Directory) FindUserByUsername(username string) (*models.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	user, ok := d.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *user
	return &out, nil
}

// UpdateLastLogin stamps the user's last login time
func (d *Directory) UpdateLastLogin(username string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.users[username]
	if !ok {
		return ErrUserNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	return nil
}

// Authenticate checks the credentials and returns the matching active user
func (d *Directory) Authenticate(s *Service, username, password string) (*models.User, error) {
	user, err := d.FindUserByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !s.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
