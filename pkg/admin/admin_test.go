package admin_test

import (
	"context"
	"testing"

	adminpkg "github.com/refugehq/crisis-admin/pkg/admin"
	"github.com/refugehq/crisis-admin/pkg/datastore"
)

type stubMenuBuilder struct {
	calls int
}

func (s *stubMenuBuilder) EnsureMenuItem(context.Context, string, adminpkg.MenuItem) error {
	s.calls++
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service, err := adminpkg.NewService(datastore.NewMemoryStore(), adminpkg.Options{})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	admin, err := adminpkg.New(adminpkg.Config{
		EnableDashboard: true,
		Service:         service,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 1 {
		t.Fatalf("expected 1 call, got %d", builder.calls)
	}
	if admin.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := adminpkg.New(adminpkg.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", builder.calls)
	}
	if admin.Dashboard() != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
}
