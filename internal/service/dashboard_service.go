package service

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
)

// Summary is the dashboard header block.
type Summary struct {
	Open           int `json:"open"`
	Resolved7d     int `json:"resolved7d"`
	HighUrgentOpen int `json:"highUrgentOpen"`
}

const summaryTTL = 30 * time.Second

// DashboardService computes the issue summary and caches it briefly.
// Issue creation invalidates the cache.
type DashboardService struct {
	issues repository.IssueCounter
	cache  *expirable.LRU[string, Summary]
}

func NewDashboardService(issues repository.IssueCounter) *DashboardService {
	return &DashboardService{
		issues: issues,
		cache:  expirable.NewLRU[string, Summary](1, nil, summaryTTL),
	}
}

func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	if cached, ok := s.cache.Get("summary"); ok {
		return cached, nil
	}

	open, err := s.issues.CountOpen(ctx)
	if err != nil {
		return Summary{}, err
	}
	resolved7d, err := s.issues.CountResolvedSince(ctx, time.Now().Add(-7*24*time.Hour))
	if err != nil {
		return Summary{}, err
	}
	highUrgent, err := s.issues.CountOpenByPriorities(ctx, []string{models.PriorityHigh, models.PriorityUrgent})
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Open: open, Resolved7d: resolved7d, HighUrgentOpen: highUrgent}
	s.cache.Add("summary", sum)
	return sum, nil
}

func (s *DashboardService) Invalidate() {
	s.cache.Purge()
}
