package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const (
	standingsJobName    = "standings_refresh"
	standingsJobTimeout = 10 * time.Minute
)

// StandingsRefresher recomputes every stored league table.
type StandingsRefresher interface {
	RefreshAllStandings(ctx context.Context) error
}

// RegisterStandingsRefresh schedules a full standings rebuild on the
// singleton scheduler.
func RegisterStandingsRefresh(refresher StandingsRefresher, cronExpr string) (gocron.Job, error) {
	svc, err := ServiceInstance()
	if err != nil {
		return nil, err
	}
	return svc.RegisterStandingsRefresh(refresher, cronExpr)
}

// RegisterStandingsRefresh schedules a full standings rebuild.
func (s *Service) RegisterStandingsRefresh(refresher StandingsRefresher, cronExpr string) (gocron.Job, error) {
	if refresher == nil {
		return nil, errors.New("standings refresh requires a refresher")
	}
	return s.AddContextJob(standingsJobName, cronExpr, standingsJobTimeout, refresher.RefreshAllStandings)
}
