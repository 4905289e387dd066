package newsletter

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/storefront-backend/pkg/db/models"
	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	"github.com/harborline/storefront-backend/pkg/logger"
	"github.com/harborline/storefront-backend/pkg/mailer"
)

const defaultPendingTTL = 30 * time.Second

// provider posts the signup to the external newsletter service.
type provider interface {
	Subscribe(ctx context.Context, email string) (*mailer.Result, error)
}

// pendingGuard defines the redis operations used to hold the single-inflight
// slot per email address.
type pendingGuard interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	NewsletterPendingKey(email string) string
}

// Submission is the settled outcome of one signup attempt. A fresh
// Submission starts every attempt, so messages from earlier attempts never
// leak into the next one.
type Submission struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ServiceParams groups dependencies for the newsletter service.
type ServiceParams struct {
	Provider        provider
	Guard           pendingGuard
	Repo            *Repository
	Logger          *logger.Logger
	PendingTTL      time.Duration
	SuccessMessage  string
	FallbackMessage string
}

// Service accepts newsletter signups: one in-flight attempt per address,
// provider result mapped to a user-facing message, successful signups
// persisted.
type Service interface {
	Submit(ctx context.Context, email string) (Submission, error)
}

type service struct {
	provider        provider
	guard           pendingGuard
	repo            *Repository
	logg            *logger.Logger
	pendingTTL      time.Duration
	successMessage  string
	fallbackMessage string
}

// NewService builds a newsletter service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider client is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pending guard is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subscriber repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	if params.SuccessMessage == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "success message is required")
	}
	if params.FallbackMessage == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fallback message is required")
	}
	ttl := params.PendingTTL
	if ttl <= 0 {
		ttl = defaultPendingTTL
	}
	return &service{
		provider:        params.Provider,
		guard:           params.Guard,
		repo:            params.Repo,
		logg:            params.Logger,
		pendingTTL:      ttl,
		successMessage:  params.SuccessMessage,
		fallbackMessage: params.FallbackMessage,
	}, nil
}

// Submit runs one signup attempt end to end. A second submission for the
// same address while the first is still pending is rejected rather than
// queued; the client resubmits once the first settles.
func (s *service) Submit(ctx context.Context, email string) (Submission, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return Submission{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	key := s.guard.NewsletterPendingKey(normalized)
	acquired, err := s.guard.SetNX(ctx, key, "1", s.pendingTTL)
	if err != nil {
		return Submission{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire pending slot")
	}
	if !acquired {
		return Submission{}, pkgerrors.New(pkgerrors.CodeConflict, "a submission for this address is already in flight")
	}
	defer func() {
		if err := s.guard.Del(ctx, key); err != nil {
			s.logg.Error(ctx, "release newsletter pending slot", err)
		}
	}()

	result, err := s.provider.Subscribe(ctx, normalized)
	if err != nil {
		s.logg.Error(ctx, "newsletter provider call failed", err)
		return Submission{ErrorMessage: s.fallbackMessage}, nil
	}

	if !result.OK {
		message := result.Error
		if message == "" {
			message = s.fallbackMessage
		}
		return Submission{ErrorMessage: message}, nil
	}

	if err := s.repo.Upsert(ctx, &models.NewsletterSubscriber{
		ID:           uuid.New(),
		Email:        normalized,
		SubscribedAt: time.Now().UTC(),
	}); err != nil {
		// The provider accepted the signup; a local bookkeeping failure
		// should not turn the user-facing outcome into an error.
		s.logg.Error(ctx, "persist newsletter subscriber", err)
	}

	return Submission{Success: true, Message: s.successMessage}, nil
}
