package models

// WaitlistStatus is the review state of a waitlist registration.
type WaitlistStatus string

const (
	WaitlistStatusPending  WaitlistStatus = "pending"
	WaitlistStatusApproved WaitlistStatus = "approved"
	WaitlistStatusDeclined WaitlistStatus = "declined"
)

func (s WaitlistStatus) IsValid() bool {
	switch s {
	case WaitlistStatusPending, WaitlistStatusApproved, WaitlistStatusDeclined:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
func (s WaitlistStatus) IsTerminal() bool {
	return s == WaitlistStatusApproved || s == WaitlistStatusDeclined
}

// WaitlistEntry is one registration. Entries are ranked by (CreatedAt, ID):
// CreatedAt is epoch milliseconds assigned by the service and ID breaks ties
// in insertion order.
type WaitlistEntry struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;index:idx_waitlist_entries_created_at,priority:2" json:"id"`
	Email          string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Name           string         `gorm:"type:varchar(255)" json:"name,omitempty"`
	Company        string         `gorm:"type:varchar(255)" json:"company,omitempty"`
	Interests      []string       `gorm:"type:text;serializer:json" json:"interests,omitempty"`
	ReferralSource string         `gorm:"type:varchar(255)" json:"referral_source,omitempty"`
	Feedback       string         `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt      int64          `gorm:"not null;index:idx_waitlist_entries_created_at,priority:1;autoCreateTime:false" json:"created_at"`
	Status         WaitlistStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
}
