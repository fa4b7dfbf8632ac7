package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	admin "github.com/refugehq/crisis-admin/components/admin"
)

// OverviewInput carries no parameters.
type OverviewInput struct{}

type overviewService interface {
	Overview(ctx context.Context) (admin.OverviewMetrics, error)
}

// OverviewQuery fetches the exact collection counts.
type OverviewQuery struct {
	service overviewService
}

// NewOverviewQuery builds the query.
func NewOverviewQuery(service overviewService) *OverviewQuery {
	return &OverviewQuery{service: service}
}

var _ gocommand.Querier[OverviewInput, admin.OverviewMetrics] = (*OverviewQuery)(nil)

// Query resolves the overview counts.
func (q *OverviewQuery) Query(ctx context.Context, _ OverviewInput) (admin.OverviewMetrics, error) {
	return q.service.Overview(ctx)
}
