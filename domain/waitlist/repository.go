package waitlist

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=waitlist

import (
	"context"
	"errors"

	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

// queueOrder is the total order of the waitlist. Every ranking query uses it.
const queueOrder = "created_at ASC, id ASC"

// createdBefore selects rows strictly ahead of a (created_at, id) pair.
const createdBefore = "created_at < ? OR (created_at = ? AND id < ?)"

type WaitlistRepository interface {
	// CreateEntry persists a new waitlist entry. A unique-index violation on
	// email is reported as a duplicate email conflict.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	// FindEntryByID retrieves a waitlist entry by its unique ID.
	FindEntryByID(ctx context.Context, id uint) (*models.WaitlistEntry, error)
	// FindEntryByEmail retrieves the entry registered with the given normalized email.
	FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error)
	// GetAllEntries returns every entry in queue order.
	GetAllEntries(ctx context.Context) ([]*models.WaitlistEntry, error)
	// GetEntriesCreatedBefore returns the entries ahead of entry, in queue order.
	GetEntriesCreatedBefore(ctx context.Context, entry *models.WaitlistEntry) ([]*models.WaitlistEntry, error)
	// CountEntriesCreatedBefore counts the entries ahead of entry.
	CountEntriesCreatedBefore(ctx context.Context, entry *models.WaitlistEntry) (int64, error)
	// CountEntriesByStatus counts entries per status in a single statement.
	CountEntriesByStatus(ctx context.Context) (map[models.WaitlistStatus]int64, error)
	// UpdateEntryStatus moves a pending entry to a terminal status.
	UpdateEntryStatus(ctx context.Context, id uint, status models.WaitlistStatus) error
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	if err := wr.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, NewDuplicateEmailError(err)
		}
		return nil, NewStoreUnavailableError("unable to create waitlist entry", err)
	}

	return entry, nil
}

func (wr *waitlistRepository) FindEntryByID(ctx context.Context, id uint) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewEntryNotFoundError(err)
		}
		return nil, NewStoreUnavailableError("failed to fetch waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) FindEntryByEmail(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	var entry models.WaitlistEntry

	if err := wr.db.WithContext(ctx).Where("email = ?", email).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewEntryNotFoundError(err)
		}
		return nil, NewStoreUnavailableError("failed to fetch waitlist entry", err)
	}

	return &entry, nil
}

func (wr *waitlistRepository) GetAllEntries(ctx context.Context) ([]*models.WaitlistEntry, error) {
	var entries []*models.WaitlistEntry

	if err := wr.db.WithContext(ctx).Order(queueOrder).Find(&entries).Error; err != nil {
		return nil, NewStoreUnavailableError("unable to fetch waitlist entries", err)
	}

	return entries, nil
}

func (wr *waitlistRepository) GetEntriesCreatedBefore(ctx context.Context, entry *models.WaitlistEntry) ([]*models.WaitlistEntry, error) {
	if entry == nil {
		return nil, apperrors.NewInvalidRequestError("entry cannot be nil", nil)
	}

	var entries []*models.WaitlistEntry

	err := wr.db.WithContext(ctx).
		Where(createdBefore, entry.CreatedAt, entry.CreatedAt, entry.ID).
		Order(queueOrder).
		Find(&entries).Error
	if err != nil {
		return nil, NewStoreUnavailableError("unable to fetch earlier waitlist entries", err)
	}

	return entries, nil
}

func (wr *waitlistRepository) CountEntriesCreatedBefore(ctx context.Context, entry *models.WaitlistEntry) (int64, error) {
	if entry == nil {
		return 0, apperrors.NewInvalidRequestError("entry cannot be nil", nil)
	}

	var count int64

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where(createdBefore, entry.CreatedAt, entry.CreatedAt, entry.ID).
		Count(&count).Error
	if err != nil {
		return 0, NewStoreUnavailableError("unable to count earlier waitlist entries", err)
	}

	return count, nil
}

type statusCount struct {
	Status models.WaitlistStatus
	Total  int64
}

func (wr *waitlistRepository) CountEntriesByStatus(ctx context.Context) (map[models.WaitlistStatus]int64, error) {
	var rows []statusCount

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, NewStoreUnavailableError("unable to count waitlist entries", err)
	}

	counts := make(map[models.WaitlistStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] += row.Total
	}

	return counts, nil
}

func (wr *waitlistRepository) UpdateEntryStatus(ctx context.Context, id uint, status models.WaitlistStatus) error {
	if !status.IsTerminal() {
		return NewInvalidStatusError("status must be approved or declined")
	}

	// Only pending rows move; a reviewed entry is never reverted or re-reviewed.
	result := wr.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ? AND status = ?", id, models.WaitlistStatusPending).
		Update("status", status)

	if result.Error != nil {
		return NewStoreUnavailableError("unable to update waitlist entry status", result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := wr.FindEntryByID(ctx, id); err != nil {
			return err
		}
		return NewInvalidStatusError("waitlist entry has already been reviewed")
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
