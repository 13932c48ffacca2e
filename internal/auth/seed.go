package auth

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUserRoles inserts the three baseline roles; reruns are no-ops.
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: "admin", Description: "Platform administrator"},
		{RoleName: "organizer", Description: "Event organizer", CanRegisterPublicly: true},
		{RoleName: "participant", Description: "Event participant", CanRegisterPublicly: true},
	}
	for _, role := range roles {
		if err := db.Where("role_name = ?", role.RoleName).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	log.Println("✅ User roles seeded")
	return nil
}

// SeedAdminUser creates the bootstrap admin account from ADMIN_EMAIL /
// ADMIN_PASSWORD. Skipped when the env vars are unset or the account exists.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	var role UserRole
	if err := db.Where("role_name = ?", "admin").First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		FullName:      "Platform Admin",
		Email:         email,
		PasswordHash:  string(hash),
		RoleID:        role.ID,
		Status:        "active",
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Admin user seeded: %s", email)
	return nil
}
