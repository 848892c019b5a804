package team

import "time"

// TeamMembership links a real seller account to the owner whose store it
// sells for. A seller should belong to at most one owner; duplicate rows are
// collapsed by the integrity sweep rather than blocked by a DB constraint.
type Membership struct {
	ID       uint `gorm:"primaryKey"`
	SellerID uint `gorm:"not null;index:idx_team_memberships_seller_id"`
	OwnerID  uint `gorm:"not null;index:idx_team_memberships_owner_id"`

	CreatedAt time.Time
}

func (Membership) TableName() string { return "team_memberships" }

// Request status values.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// Request is a seller's pending ask to join an owner's team.
type Request struct {
	ID       uint   `gorm:"primaryKey"`
	SellerID uint   `gorm:"not null;index:idx_team_requests_seller_id"`
	OwnerID  uint   `gorm:"not null;index:idx_team_requests_owner_id"`
	Status   string `gorm:"type:varchar(20);not null;default:'pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Request) TableName() string { return "team_requests" }

// VirtualSeller is a non-authenticating placeholder created by an owner.
// It consumes a seat but never logs in and never becomes a Membership.
// DeleteToken must be echoed back to delete the row.
type VirtualSeller struct {
	ID          uint    `gorm:"primaryKey"`
	OwnerID     uint    `gorm:"not null;index:idx_virtual_sellers_owner_id"`
	Name        string
	Email       *string
	DeleteToken string  `gorm:"type:varchar(36);not null"`

	CreatedAt time.Time
}

func (VirtualSeller) TableName() string { return "virtual_sellers" }
