// file: internals/features/users/user/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserEmail    string `gorm:"type:varchar(255);not null;uniqueIndex;column:user_email" json:"user_email"`
	UserPassword string `gorm:"type:varchar(255);not null;column:user_password" json:"-"`

	UserFirstName string  `gorm:"type:varchar(100);not null;column:user_first_name" json:"user_first_name"`
	UserLastName  string  `gorm:"type:varchar(100);not null;column:user_last_name" json:"user_last_name"`
	UserPhone     *string `gorm:"type:varchar(30);column:user_phone" json:"user_phone,omitempty"`
	UserAddress   *string `gorm:"type:text;column:user_address" json:"user_address,omitempty"`

	// member | librarian | admin | guest
	UserRole     string `gorm:"type:varchar(20);not null;default:'member';column:user_role" json:"user_role"`
	UserIsActive bool   `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserMembershipDate time.Time `gorm:"type:timestamptz;not null;default:now();column:user_membership_date" json:"user_membership_date"`

	UserCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// Hash password sebelum insert kalau belum berbentuk hash bcrypt.
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserPassword == "" || len(u.UserPassword) >= 4 && u.UserPassword[:4] == "$2a$" {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.UserPassword), 12)
	if err != nil {
		return err
	}
	u.UserPassword = string(hashed)
	return nil
}

func (u *UserModel) ComparePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(plain)) == nil
}

func (u *UserModel) FullName() string {
	return u.UserFirstName + " " + u.UserLastName
}
