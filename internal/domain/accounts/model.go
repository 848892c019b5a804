package accounts

import "time"

type Account struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_accounts_email"`
	Password     *string
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_accounts_google_sub"`

	// Role may legitimately be empty on legacy rows; the reconciler
	// repairs it at session start. Everywhere else goes through ParseRole.
	Role string `gorm:"type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
