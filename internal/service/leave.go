package service

import (
	"fmt"
	"time"

	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LeaveService handles the request and approval flow for absence periods.
type LeaveService struct {
	leaveRepo repository.LeaveRepository
	userRepo  repository.UserRepository
	notifier  Notifier
	logger    *logrus.Logger
}

func NewLeaveService(leaveRepo repository.LeaveRepository, userRepo repository.UserRepository, notifier Notifier) *LeaveService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &LeaveService{
		leaveRepo: leaveRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		logger:    logger,
	}
}

func (s *LeaveService) Request(companyID, userID uuid.UUID, startDate, endDate, leaveType, reason string) (*models.LeaveRequest, error) {
	request := &models.LeaveRequest{
		CompanyID: companyID,
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      leaveType,
		Reason:    reason,
		Status:    models.LeavePending,
	}

	if err := s.leaveRepo.Create(request); err != nil {
		return nil, err
	}

	return request, nil
}

// Review approves or rejects a pending request. A request is reviewed at most
// once; the reviewer must hold the manager or admin role.
func (s *LeaveService) Review(reviewerID, requestID uuid.UUID, approve bool) (*models.LeaveRequest, error) {
	reviewer, err := s.userRepo.GetByID(reviewerID)
	if err != nil {
		return nil, err
	}

	if reviewer == nil || !reviewer.CanReview() {
		return nil, ErrForbidden
	}

	request, err := s.leaveRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	if request == nil || request.CompanyID != reviewer.CompanyID {
		return nil, repository.ErrNotFound
	}

	if !request.IsPending() {
		return nil, ErrAlreadyReviewed
	}

	if approve {
		request.Status = models.LeaveApproved
	} else {
		request.Status = models.LeaveRejected
	}

	now := time.Now()
	request.ReviewerID = &reviewerID
	request.ReviewedAt = &now

	if err := s.leaveRepo.Update(request); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":     request.ID,
		"status": request.Status,
	}).Info("Leave request reviewed")

	if s.notifier != nil {
		if err := s.notifier.Notify(request.UserID, models.NotifyLeaveReviewed,
			fmt.Sprintf("Your %s request was %s.", request.Type, request.Status)); err != nil {
			s.logger.WithError(err).Warn("Failed to notify requester")
		}
	}

	return request, nil
}

func (s *LeaveService) Mine(userID uuid.UUID) ([]*models.LeaveRequest, error) {
	return s.leaveRepo.ListByUser(userID)
}

func (s *LeaveService) ForCompany(companyID uuid.UUID, status string) ([]*models.LeaveRequest, error) {
	return s.leaveRepo.ListByCompany(companyID, status)
}
