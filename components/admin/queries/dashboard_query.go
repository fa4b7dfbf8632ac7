package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	admin "github.com/refugehq/crisis-admin/components/admin"
)

// DashboardInput carries no parameters; the dashboard always renders every
// registered section.
type DashboardInput struct{}

type dashboardService interface {
	Dashboard(ctx context.Context) (admin.Dashboard, error)
}

// DashboardQuery executes read-only dashboard resolution.
type DashboardQuery struct {
	service dashboardService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service dashboardService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[DashboardInput, admin.Dashboard] = (*DashboardQuery)(nil)

// Query resolves the full dashboard view-model.
func (q *DashboardQuery) Query(ctx context.Context, _ DashboardInput) (admin.Dashboard, error) {
	return q.service.Dashboard(ctx)
}
