package waitlist

//go:generate mockgen -source=service.go -destination=mock_service.go -package=waitlist

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	validate = validator.New()
	tracer   = otel.Tracer("github.com/akeren/waitlist-api/domain/waitlist")
)

type WaitlistService interface {
	// Register adds an email to the waitlist and returns the new entry's ID.
	Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error)

	// SubmitFeedback registers an email through the legacy email+feedback intake path.
	SubmitFeedback(ctx context.Context, req *SubmitRequest) (*RegisterResponse, error)

	// GetStats returns aggregate counts computed from the store at call time.
	GetStats(ctx context.Context) (*StatsResponse, error)

	// GetPosition returns the queue position for email, or nil when the email is not on the waitlist.
	GetPosition(ctx context.Context, email string) (*PositionResponse, error)

	// FindEntryByID retrieves a waitlist entry by its unique ID.
	FindEntryByID(ctx context.Context, id uint) (*WaitlistEntryResponse, error)

	// GetAllEntries retrieves all waitlist entries in queue order.
	GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error)

	// UpdateEntryStatus approves or declines the pending entry registered with email.
	UpdateEntryStatus(ctx context.Context, email string, status models.WaitlistStatus) error
}

// RegistrationEvent describes a committed registration. Position is zero when
// it could not be determined.
type RegistrationEvent struct {
	EntryID  uint
	Email    string
	Name     string
	Position int64
}

// RegistrationHook runs after a registration has been committed. Its error is
// logged and discarded: it can neither fail nor roll back the registration.
type RegistrationHook interface {
	AfterRegister(ctx context.Context, event RegistrationEvent) error
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	hook       RegistrationHook
	now        func() time.Time
}

// NewWaitlistService builds the service. hook may be nil.
func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, hook RegistrationHook) WaitlistService {
	return &waitlistService{
		logger:     logger,
		repository: repository,
		hook:       hook,
		now:        time.Now,
	}
}

func (s *waitlistService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	ctx, span := tracer.Start(ctx, "waitlist.Register")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Register received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	resp, err := s.register(ctx, logger, ToWaitlistEntryModel(req))
	recordSpanError(span, err)
	return resp, err
}

func (s *waitlistService) SubmitFeedback(ctx context.Context, req *SubmitRequest) (*RegisterResponse, error) {
	ctx, span := tracer.Start(ctx, "waitlist.SubmitFeedback")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("SubmitFeedback received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	entry := &models.WaitlistEntry{
		Email:    NormalizeEmail(req.Email),
		Feedback: req.Feedback,
	}

	resp, err := s.register(ctx, logger, entry)
	recordSpanError(span, err)
	return resp, err
}

func (s *waitlistService) register(ctx context.Context, logger *log.Logger, entry *models.WaitlistEntry) (*RegisterResponse, error) {
	if !isValidEmail(entry.Email) {
		logger.Warn("Register received invalid email")
		return nil, NewInvalidEmailError()
	}

	existing, err := s.repository.FindEntryByEmail(ctx, entry.Email)
	switch {
	case err == nil && existing != nil:
		logger.Info("Register rejected duplicate email", "entry_id", existing.ID)
		return nil, NewDuplicateEmailError(nil)
	case err != nil && !errors.Is(err, ErrEntryNotFound):
		logger.Error("Failed to check for existing waitlist entry", "error", err)
		return nil, err
	}

	entry.CreatedAt = s.now().UnixMilli()
	entry.Status = models.WaitlistStatusPending

	// A concurrent registration for the same email can pass the check above;
	// the unique index on email turns the losing insert into ErrDuplicateEmail.
	created, err := s.repository.CreateEntry(ctx, entry)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			logger.Info("Register lost a concurrent duplicate insert")
		} else {
			logger.Error("Failed to create waitlist entry", "error", err)
		}
		return nil, err
	}

	logger.Info("Waitlist entry created", "entry_id", created.ID)

	s.afterRegister(ctx, logger, created)

	return &RegisterResponse{ID: created.ID}, nil
}

func (s *waitlistService) afterRegister(ctx context.Context, logger *log.Logger, entry *models.WaitlistEntry) {
	if s.hook == nil {
		return
	}

	event := RegistrationEvent{
		EntryID: entry.ID,
		Email:   entry.Email,
		Name:    entry.Name,
	}

	if earlier, err := s.repository.CountEntriesCreatedBefore(ctx, entry); err != nil {
		logger.Warn("Could not compute position for registration notification", "entry_id", entry.ID, "error", err)
	} else {
		event.Position = earlier + 1
	}

	if err := s.hook.AfterRegister(ctx, event); err != nil {
		logger.Warn("Registration notification failed", "entry_id", entry.ID, "error", err)
	}
}

func (s *waitlistService) GetStats(ctx context.Context) (*StatsResponse, error) {
	ctx, span := tracer.Start(ctx, "waitlist.GetStats")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	counts, err := s.repository.CountEntriesByStatus(ctx)
	if err != nil {
		logger.Error("Failed to count waitlist entries", "error", err)
		recordSpanError(span, err)
		return nil, err
	}

	return ToStatsResponse(counts), nil
}

func (s *waitlistService) GetPosition(ctx context.Context, email string) (*PositionResponse, error) {
	ctx, span := tracer.Start(ctx, "waitlist.GetPosition")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	email = NormalizeEmail(email)
	if !isValidEmail(email) {
		// Nothing malformed can ever have been registered.
		return nil, nil
	}

	entry, err := s.repository.FindEntryByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return nil, nil
		}
		logger.Error("Failed to find waitlist entry", "error", err)
		recordSpanError(span, err)
		return nil, err
	}

	earlier, err := s.repository.CountEntriesCreatedBefore(ctx, entry)
	if err != nil {
		logger.Error("Failed to count earlier waitlist entries", "entry_id", entry.ID, "error", err)
		recordSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("waitlist.position", earlier+1))

	return ToPositionResponse(entry, earlier), nil
}

func (s *waitlistService) FindEntryByID(ctx context.Context, id uint) (*WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id == 0 {
		logger.Error("FindEntryByID received invalid ID")
		return nil, apperrors.NewInvalidRequestError("invalid entry ID", nil)
	}

	entry, err := s.repository.FindEntryByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find waitlist entry", "id", id, "error", err)
		return nil, err
	}

	response := ToWaitlistEntryResponse(entry)
	return &response, nil
}

func (s *waitlistService) GetAllEntries(ctx context.Context) ([]WaitlistEntryResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	entries, err := s.repository.GetAllEntries(ctx)
	if err != nil {
		logger.Error("Failed to get all waitlist entries", "error", err)
		return nil, err
	}

	responses := make([]WaitlistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, ToWaitlistEntryResponse(entry))
	}

	return responses, nil
}

func (s *waitlistService) UpdateEntryStatus(ctx context.Context, email string, status models.WaitlistStatus) error {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if !status.IsTerminal() {
		logger.Error("UpdateEntryStatus received non-terminal status", "status", status)
		return NewInvalidStatusError("status must be approved or declined")
	}

	email = NormalizeEmail(email)
	if !isValidEmail(email) {
		return NewInvalidEmailError()
	}

	entry, err := s.repository.FindEntryByEmail(ctx, email)
	if err != nil {
		logger.Error("Failed to find waitlist entry", "error", err)
		return err
	}

	if err := s.repository.UpdateEntryStatus(ctx, entry.ID, status); err != nil {
		logger.Error("Failed to update waitlist entry status", "id", entry.ID, "status", status, "error", err)
		return err
	}

	logger.Info("Waitlist entry reviewed", "id", entry.ID, "status", status)
	return nil
}

func isValidEmail(email string) bool {
	return validate.Var(email, "required,email,max=255") == nil
}

func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, string(apperrors.GetErrorType(err)))
}
