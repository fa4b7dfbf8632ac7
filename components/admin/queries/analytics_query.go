package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	admin "github.com/refugehq/crisis-admin/components/admin"
)

// AnalyticsInput carries no parameters.
type AnalyticsInput struct{}

type analyticsService interface {
	AnalyticsView(ctx context.Context) (admin.AnalyticsView, error)
}

// AnalyticsQuery fetches the bundled chat analytics aggregation.
type AnalyticsQuery struct {
	service analyticsService
}

// NewAnalyticsQuery builds the query.
func NewAnalyticsQuery(service analyticsService) *AnalyticsQuery {
	return &AnalyticsQuery{service: service}
}

var _ gocommand.Querier[AnalyticsInput, admin.AnalyticsView] = (*AnalyticsQuery)(nil)

// Query resolves the analytics view.
func (q *AnalyticsQuery) Query(ctx context.Context, _ AnalyticsInput) (admin.AnalyticsView, error) {
	return q.service.AnalyticsView(ctx)
}
