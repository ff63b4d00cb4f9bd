package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/openshelf/library-admin/internal/domain/auth"
)

func identity(role domainauth.Role, resetRequired bool) *domainauth.Identity {
	return &domainauth.Identity{
		ID:                    "u-1",
		Name:                  "Test User",
		Email:                 "user@example.com",
		Role:                  role,
		PasswordResetRequired: resetRequired,
	}
}

func TestEvaluate_LoadingNeverRedirects(t *testing.T) {
	admin := domainauth.RoleAdmin
	routes := []Route{
		{Path: "/dashboard"},
		{Path: "/admin", RequiredRole: &admin},
		{Path: ResetPasswordPath},
	}

	for _, route := range routes {
		d := Evaluate(Loading(), route, route.Path)
		assert.Equal(t, OutcomeLoading, d.Outcome, "path %s", route.Path)
		assert.Empty(t, d.Location)
	}
}

func TestEvaluate_DecisionTable(t *testing.T) {
	superAdmin := domainauth.RoleSuperAdmin
	admin := domainauth.RoleAdmin

	tests := []struct {
		name         string
		state        SessionState
		route        Route
		path         string
		wantOutcome  Outcome
		wantLocation string
	}{
		{
			name:         "unauthenticated on protected path redirects to login",
			state:        Resolved(nil),
			route:        Route{Path: "/dashboard"},
			path:         "/dashboard",
			wantOutcome:  OutcomeRedirect,
			wantLocation: LoginPath,
		},
		{
			name:         "unauthenticated on reset path also redirects to login",
			state:        Resolved(nil),
			route:        Route{Path: ResetPasswordPath},
			path:         ResetPasswordPath,
			wantOutcome:  OutcomeRedirect,
			wantLocation: LoginPath,
		},
		{
			name:         "pending reset forces reset path before role gating",
			state:        Resolved(identity(domainauth.RoleSuperAdmin, true)),
			route:        Route{Path: "/super-admin", RequiredRole: &superAdmin},
			path:         "/super-admin",
			wantOutcome:  OutcomeRedirect,
			wantLocation: ResetPasswordPath,
		},
		{
			name:        "pending reset renders the reset screen itself",
			state:       Resolved(identity(domainauth.RoleUser, true)),
			route:       Route{Path: ResetPasswordPath},
			path:        ResetPasswordPath,
			wantOutcome: OutcomeRender,
		},
		{
			name:         "settled superAdmin bounced off reset screen to role home",
			state:        Resolved(identity(domainauth.RoleSuperAdmin, false)),
			route:        Route{Path: ResetPasswordPath},
			path:         ResetPasswordPath,
			wantOutcome:  OutcomeRedirect,
			wantLocation: "/super-admin",
		},
		{
			name:         "settled admin bounced off reset screen to admin home",
			state:        Resolved(identity(domainauth.RoleAdmin, false)),
			route:        Route{Path: ResetPasswordPath},
			path:         ResetPasswordPath,
			wantOutcome:  OutcomeRedirect,
			wantLocation: "/admin",
		},
		{
			name:         "settled user bounced off reset screen to dashboard",
			state:        Resolved(identity(domainauth.RoleUser, false)),
			route:        Route{Path: ResetPasswordPath},
			path:         ResetPasswordPath,
			wantOutcome:  OutcomeRedirect,
			wantLocation: "/dashboard",
		},
		{
			name:         "role mismatch redirects to not-found, not login",
			state:        Resolved(identity(domainauth.RoleAdmin, false)),
			route:        Route{Path: "/super-admin", RequiredRole: &superAdmin},
			path:         "/super-admin",
			wantOutcome:  OutcomeRedirect,
			wantLocation: NotFoundPath,
		},
		{
			name:        "matching role renders",
			state:       Resolved(identity(domainauth.RoleAdmin, false)),
			route:       Route{Path: "/admin", RequiredRole: &admin},
			path:        "/admin",
			wantOutcome: OutcomeRender,
		},
		{
			name:        "route without role requirement renders for any identity",
			state:       Resolved(identity(domainauth.RoleUser, false)),
			route:       Route{Path: "/dashboard"},
			path:        "/dashboard",
			wantOutcome: OutcomeRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.state, tt.route, tt.path)
			assert.Equal(t, tt.wantOutcome, d.Outcome)
			assert.Equal(t, tt.wantLocation, d.Location)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	superAdmin := domainauth.RoleSuperAdmin
	state := Resolved(identity(domainauth.RoleAdmin, false))
	route := Route{Path: "/super-admin", RequiredRole: &superAdmin}

	first := Evaluate(state, route, "/super-admin")
	second := Evaluate(state, route, "/super-admin")
	assert.Equal(t, first, second)
}

func TestTable_Match(t *testing.T) {
	admin := domainauth.RoleAdmin
	table := NewTable([]Route{
		{Path: "/dashboard"},
		{Path: "/admin", RequiredRole: &admin},
	})

	got := table.Match("/admin")
	assert.Equal(t, "/admin", got.Path)
	assert.NotNil(t, got.RequiredRole)

	// Unknown paths fall through to the guarded catch-all.
	fallthru := table.Match("/no-such-page")
	assert.Equal(t, NotFoundPath, fallthru.Path)
	assert.Nil(t, fallthru.RequiredRole)
	assert.False(t, fallthru.Public)
}

func TestTable_CatchAllStillGuarded(t *testing.T) {
	table := NewTable(nil)
	route := table.Match("/no-such-page")

	// Unauthenticated visitors to unknown paths go to login, not the
	// branded not-found page.
	d := Evaluate(Resolved(nil), route, "/no-such-page")
	assert.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, LoginPath, d.Location)

	// Authenticated visitors see the not-found page.
	d = Evaluate(Resolved(identity(domainauth.RoleUser, false)), route, "/no-such-page")
	assert.Equal(t, OutcomeRender, d.Outcome)
}
