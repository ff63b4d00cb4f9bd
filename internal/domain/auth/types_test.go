package auth

import (
	"testing"
	"time"
)

func TestRole_HomePath(t *testing.T) {
	cases := map[Role]string{
		RoleSuperAdmin: "/super-admin",
		RoleAdmin:      "/admin",
		RoleUser:       "/dashboard",
		Role("bogus"):  "/dashboard",
	}
	for role, want := range cases {
		if got := role.HomePath(); got != want {
			t.Fatalf("HomePath(%q) = %q, want %q", role, got, want)
		}
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("superadmin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != RoleSuperAdmin {
		t.Fatalf("got %q", r)
	}

	if _, err := ParseRole("root"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestSession_StaleAfter(t *testing.T) {
	now := time.Now()
	s := Session{RefreshedAt: now.Add(-2 * time.Minute)}
	if !s.StaleAfter(time.Minute, now) {
		t.Fatalf("expected stale")
	}
	if s.StaleAfter(5*time.Minute, now) {
		t.Fatalf("did not expect stale")
	}
}
