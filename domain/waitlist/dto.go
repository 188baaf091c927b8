package waitlist

import (
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/constants"
)

// ========================================
// Request DTOs
// ========================================

// Email format is checked by the service after normalization, so binding
// only enforces presence and length.
type RegisterRequest struct {
	Email          string   `json:"email" binding:"required,max=255"`
	Name           string   `json:"name" binding:"omitempty,max=255"`
	Company        string   `json:"company" binding:"omitempty,max=255"`
	Interests      []string `json:"interests" binding:"omitempty,max=20,dive,max=100"`
	ReferralSource string   `json:"referral_source" binding:"omitempty,max=255"`
}

// SubmitRequest is the older intake path that only captured an email and a
// free-text answer about feedback tools.
type SubmitRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Feedback string `json:"feedback" binding:"omitempty,max=2000"`
}

// ========================================
// Response DTOs
// ========================================

type RegisterResponse struct {
	ID uint `json:"id"`
}

type StatsResponse struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
}

type PositionResponse struct {
	Position int64                 `json:"position"`
	Status   models.WaitlistStatus `json:"status"`
	JoinedAt int64                 `json:"joined_at"`
}

type WaitlistEntryResponse struct {
	ID             uint                  `json:"id"`
	Email          string                `json:"email"`
	Name           string                `json:"name,omitempty"`
	Company        string                `json:"company,omitempty"`
	Interests      []string              `json:"interests,omitempty"`
	ReferralSource string                `json:"referral_source,omitempty"`
	Feedback       string                `json:"feedback,omitempty"`
	Status         models.WaitlistStatus `json:"status"`
	CreatedAt      string                `json:"created_at"`
}

// ========================================
// Mappers
// ========================================

// NormalizeEmail is applied before both the uniqueness check and every lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToWaitlistEntryModel(req *RegisterRequest) *models.WaitlistEntry {
	if req == nil {
		return nil
	}
	return &models.WaitlistEntry{
		Email:          NormalizeEmail(req.Email),
		Name:           strings.TrimSpace(req.Name),
		Company:        strings.TrimSpace(req.Company),
		Interests:      cleanInterests(req.Interests),
		ReferralSource: strings.TrimSpace(req.ReferralSource),
	}
}

func cleanInterests(interests []string) []string {
	if len(interests) == 0 {
		return nil
	}

	cleaned := make([]string, 0, len(interests))
	for _, interest := range interests {
		if s := strings.TrimSpace(interest); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

func ToWaitlistEntryResponse(entry *models.WaitlistEntry) WaitlistEntryResponse {
	if entry == nil {
		return WaitlistEntryResponse{}
	}
	return WaitlistEntryResponse{
		ID:             entry.ID,
		Email:          entry.Email,
		Name:           entry.Name,
		Company:        entry.Company,
		Interests:      entry.Interests,
		ReferralSource: entry.ReferralSource,
		Feedback:       entry.Feedback,
		Status:         entry.Status,
		CreatedAt:      time.UnixMilli(entry.CreatedAt).UTC().Format(constants.RFC3339DateTimeFormat),
	}
}

func ToPositionResponse(entry *models.WaitlistEntry, earlier int64) *PositionResponse {
	return &PositionResponse{
		Position: earlier + 1,
		Status:   entry.Status,
		JoinedAt: entry.CreatedAt,
	}
}

func ToStatsResponse(counts map[models.WaitlistStatus]int64) *StatsResponse {
	stats := &StatsResponse{}
	for status, n := range counts {
		stats.Total += n
		switch status {
		case models.WaitlistStatusPending:
			stats.Pending += n
		case models.WaitlistStatusApproved:
			stats.Approved += n
		}
	}
	return stats
}
