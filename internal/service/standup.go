package service

import (
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/clock"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/models"
	"github.com/ekodrix-collab/ekodrix-hrms-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type StandupService struct {
	standupRepo repository.StandupRepository
	resolver    *clock.Resolver
	logger      *logrus.Logger
}

func NewStandupService(standupRepo repository.StandupRepository, resolver *clock.Resolver) *StandupService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &StandupService{
		standupRepo: standupRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

// Submit writes today's standup note for the user, replacing any earlier one.
func (s *StandupService) Submit(companyID, userID uuid.UUID, yesterday, today, blockers string) (*models.StandupEntry, error) {
	entry := &models.StandupEntry{
		CompanyID: companyID,
		UserID:    userID,
		Date:      s.resolver.Today(),
		Yesterday: yesterday,
		Today:     today,
		Blockers:  blockers,
	}

	if err := s.standupRepo.Upsert(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// ForDate returns the team's entries for a civil date; empty date means today.
func (s *StandupService) ForDate(companyID uuid.UUID, date string) ([]*models.StandupEntry, error) {
	if date == "" {
		date = s.resolver.Today()
	}

	return s.standupRepo.ListByCompanyAndDate(companyID, date)
}

// Mine returns the user's entry for a date, or nil.
func (s *StandupService) Mine(userID uuid.UUID, date string) (*models.StandupEntry, error) {
	if date == "" {
		date = s.resolver.Today()
	}

	return s.standupRepo.GetByUserAndDate(userID, date)
}
