package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	GetPublicRoles() ([]UserRole, error)
	Update(user *User) error
	UpdateFCMToken(userID uint, token string) error

	CreateOrganizerProfile(p *OrganizerProfile) error
	FindOrganizerProfile(userID uint) (*OrganizerProfile, error)
	CreateParticipantProfile(p *ParticipantProfile) error
	FindParticipantProfile(userID uint) (*ParticipantProfile, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	return user, err
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// Roles shown on the signup form; admin stays out of the list.
func (r *repository) GetPublicRoles() ([]UserRole, error) {
	var roles []UserRole
	err := r.db.Where("can_register_publicly = ?", true).Order("role_name").Find(&roles).Error
	return roles, err
}

func (r *repository) UpdateFCMToken(userID uint, token string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("fcm_token", token).Error
}

func (r *repository) CreateOrganizerProfile(p *OrganizerProfile) error {
	return r.db.Create(p).Error
}

func (r *repository) FindOrganizerProfile(userID uint) (*OrganizerProfile, error) {
	var p OrganizerProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *repository) CreateParticipantProfile(p *ParticipantProfile) error {
	return r.db.Create(p).Error
}

func (r *repository) FindParticipantProfile(userID uint) (*ParticipantProfile, error) {
	var p ParticipantProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}
