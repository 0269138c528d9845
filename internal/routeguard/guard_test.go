package routeguard

import (
	"testing"

	"github.com/s50889/ordesite2-sub001/pkg/enums"
)

func TestEvaluate(t *testing.T) {
	anon := Session{}
	customer := Session{Authenticated: true, Role: enums.RoleCustomer, RoleKnown: true}
	sales := Session{Authenticated: true, Role: enums.RoleSales, RoleKnown: true}
	admin := Session{Authenticated: true, Role: enums.RoleAdmin, RoleKnown: true}
	roleUnknown := Session{Authenticated: true, RoleKnown: false}

	cases := []struct {
		name     string
		path     string
		sess     Session
		action   Action
		location string
	}{
		{"anonymous on public page", "/", anon, ActionAllow, ""},
		{"anonymous on product page", "/products/abc", anon, ActionAllow, ""},
		{"anonymous on dashboard", "/dashboard", anon, ActionRedirectLogin, "/login?redirectTo=%2Fdashboard"},
		{"anonymous on nested orders path", "/orders/123", anon, ActionRedirectLogin, "/login?redirectTo=%2Forders%2F123"},
		{"anonymous on cart", "/cart", anon, ActionRedirectLogin, "/login?redirectTo=%2Fcart"},
		{"anonymous on login", "/login", anon, ActionAllow, ""},
		{"customer on login", "/login", customer, ActionRedirectHome, "/"},
		{"admin on signup", "/signup", admin, ActionRedirectHome, "/"},
		{"customer on dashboard", "/dashboard", customer, ActionAllow, ""},
		{"customer on admin", "/admin", customer, ActionRedirectDashboard, "/dashboard"},
		{"customer on admin subpath", "/admin/products", customer, ActionRedirectDashboard, "/dashboard"},
		{"sales on admin", "/admin", sales, ActionRedirectDashboard, "/dashboard"},
		{"admin on admin", "/admin", admin, ActionAllow, ""},
		{"customer on sales", "/sales", customer, ActionRedirectDashboard, "/dashboard"},
		{"sales on sales", "/sales/orders", sales, ActionAllow, ""},
		{"admin on sales", "/sales", admin, ActionAllow, ""},
		{"role lookup failed on admin", "/admin", roleUnknown, ActionRedirectDashboard, "/dashboard"},
		{"role lookup failed on sales", "/sales", roleUnknown, ActionRedirectDashboard, "/dashboard"},
		{"role lookup failed on dashboard", "/dashboard", roleUnknown, ActionAllow, ""},
		{"prefix must match a whole segment", "/salesforce", customer, ActionAllow, ""},
		{"admin-like public path", "/administration", customer, ActionAllow, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.path, tc.sess)
			if got.Action != tc.action {
				t.Fatalf("expected action %d, got %d", tc.action, got.Action)
			}
			if got.Location != tc.location {
				t.Fatalf("expected location %q, got %q", tc.location, got.Location)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	skipped := []string{
		"/api/v1/orders",
		"/_next/static/chunk.js",
		"/_next/image",
		"/favicon.ico",
	}
	for _, path := range skipped {
		if !Skip(path) {
			t.Errorf("expected %q to be skipped", path)
		}
	}

	evaluated := []string{"/", "/dashboard", "/apiary", "/_nextdoor"}
	for _, path := range evaluated {
		if Skip(path) {
			t.Errorf("expected %q to be evaluated", path)
		}
	}
}
