// Package dashboard assembles the overview from the three collections.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/outbreakwatch/internal/domain/casestat"
	"github.com/rpggio/outbreakwatch/internal/domain/facility"
	"github.com/rpggio/outbreakwatch/internal/domain/outbreak"
	"github.com/rpggio/outbreakwatch/internal/summary"
	"golang.org/x/sync/errgroup"
)

// OutbreakLister lists outbreaks.
type OutbreakLister interface {
	List(ctx context.Context) ([]outbreak.ListItem, error)
}

// FacilityLister lists facilities.
type FacilityLister interface {
	List(ctx context.Context) ([]facility.Facility, error)
}

// CaseStatLister lists case statistics.
type CaseStatLister interface {
	List(ctx context.Context) ([]casestat.CaseStat, error)
}

// Service fetches the collections behind the dashboard.
type Service struct {
	outbreaks  OutbreakLister
	facilities FacilityLister
	stats      CaseStatLister
	logger     *slog.Logger
}

// NewService creates a dashboard service. logger may be nil.
func NewService(outbreaks OutbreakLister, facilities FacilityLister, stats CaseStatLister, logger *slog.Logger) *Service {
	return &Service{
		outbreaks:  outbreaks,
		facilities: facilities,
		stats:      stats,
		logger:     logger,
	}
}

// Snapshot holds one consistent-enough read of every collection.
type Snapshot struct {
	Outbreaks  []outbreak.ListItem
	Facilities []facility.Facility
	CaseStats  []casestat.CaseStat
}

// Fetch lists the three collections concurrently. The first failure
// cancels the other requests and is returned.
func (s *Service) Fetch(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.outbreaks.List(gctx)
		if err != nil {
			return fmt.Errorf("listing outbreaks: %w", err)
		}
		snap.Outbreaks = items
		return nil
	})
	g.Go(func() error {
		items, err := s.facilities.List(gctx)
		if err != nil {
			return fmt.Errorf("listing facilities: %w", err)
		}
		snap.Facilities = items
		return nil
	})
	g.Go(func() error {
		items, err := s.stats.List(gctx)
		if err != nil {
			return fmt.Errorf("listing case stats: %w", err)
		}
		snap.CaseStats = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Debug("dashboard fetched",
			"outbreaks", len(snap.Outbreaks),
			"facilities", len(snap.Facilities),
			"case_stats", len(snap.CaseStats),
			"duration", time.Since(start))
	}
	return &snap, nil
}

// Overview fetches every collection and computes the headline figures.
func (s *Service) Overview(ctx context.Context) (*summary.Overview, error) {
	snap, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	overview := summary.Compute(snap.Outbreaks, snap.Facilities, snap.CaseStats)
	return &overview, nil
}
