package service

import (
	"context"
	"fmt"

	"github.com/tinashem/employee-portal/internal/application/port"
	"github.com/tinashem/employee-portal/internal/domain/entity"
	"github.com/tinashem/employee-portal/internal/domain/errs"
)

// NotificationService constructs notification records for workflow
// transitions and serves the recipient-facing read/mark operations. It never
// delivers anything; delivery transport is out of scope.
//
// The Notify* methods are the best-effort side of a transition: they return
// an error for callers that want to observe failures, but orchestrators log
// and swallow it, so a failed fan-out never fails the parent transition.
type NotificationService interface {
	NotifyReviewers(ctx context.Context, ntype, title, message, relatedID string) error
	NotifyUser(ctx context.Context, userID, ntype, title, message, relatedID string) error

	ListForUser(ctx context.Context, p *entity.Principal, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, p *entity.Principal) (int, error)
	MarkRead(ctx context.Context, p *entity.Principal, id string) error
	MarkAllRead(ctx context.Context, p *entity.Principal) error
}

type notificationServiceImpl struct {
	notificationRepo port.NotificationRepository
	userRepo         port.UserRepository
	logger           Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(
	notificationRepo port.NotificationRepository,
	userRepo port.UserRepository,
	logger Logger,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// NotifyReviewers fans one notification out to every ADMIN and HR user: the
// full reviewer set present at this moment, not only those holding the
// specific approving right.
func (s *notificationServiceImpl) NotifyReviewers(ctx context.Context, ntype, title, message, relatedID string) error {
	reviewers, err := s.userRepo.ListByRoles(ctx, entity.RoleAdmin, entity.RoleHR)
	if err != nil {
		return fmt.Errorf("list reviewers: %w", err)
	}
	if len(reviewers) == 0 {
		// An empty reviewer set is not a failure of the parent transition.
		s.logger.Info("No reviewers to notify", "type", ntype, "related_id", relatedID)
		return nil
	}

	records := make([]*entity.Notification, 0, len(reviewers))
	for _, reviewer := range reviewers {
		records = append(records, entity.NewNotification(reviewer.ID, ntype, title, message, relatedID))
	}

	if err := s.notificationRepo.CreateMany(ctx, records); err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}

	s.logger.Info("Reviewers notified", "type", ntype, "count", len(records), "related_id", relatedID)
	return nil
}

// NotifyUser constructs one notification for a single recipient.
func (s *notificationServiceImpl) NotifyUser(ctx context.Context, userID, ntype, title, message, relatedID string) error {
	record := entity.NewNotification(userID, ntype, title, message, relatedID)
	if err := s.notificationRepo.CreateMany(ctx, []*entity.Notification{record}); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// ListForUser returns the principal's notifications, newest first.
func (s *notificationServiceImpl) ListForUser(ctx context.Context, p *entity.Principal, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	if p == nil || p.ID == "" {
		return nil, errs.ErrUnauthenticated
	}
	notifications, err := s.notificationRepo.ListByUser(ctx, p.ID, unreadOnly, limit, offset)
	if err != nil {
		return nil, storeErr("list notifications", err)
	}
	return notifications, nil
}

// CountUnread returns the principal's unread notification count.
func (s *notificationServiceImpl) CountUnread(ctx context.Context, p *entity.Principal) (int, error) {
	if p == nil || p.ID == "" {
		return 0, errs.ErrUnauthenticated
	}
	count, err := s.notificationRepo.CountUnread(ctx, p.ID)
	if err != nil {
		return 0, storeErr("count unread notifications", err)
	}
	return count, nil
}

// MarkRead marks one of the principal's own notifications as read.
func (s *notificationServiceImpl) MarkRead(ctx context.Context, p *entity.Principal, id string) error {
	if p == nil || p.ID == "" {
		return errs.ErrUnauthenticated
	}
	if err := s.notificationRepo.MarkRead(ctx, id, p.ID); err != nil {
		return err
	}
	return nil
}

// MarkAllRead marks all the principal's notifications as read.
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, p *entity.Principal) error {
	if p == nil || p.ID == "" {
		return errs.ErrUnauthenticated
	}
	if err := s.notificationRepo.MarkAllRead(ctx, p.ID); err != nil {
		return storeErr("mark all read", err)
	}
	return nil
}
