package rbac

import "testing"

func TestMatchPathWildcardSegments(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		ok      bool
	}{
		{pattern: "/app/admin/users/*/delete", path: "/app/admin/users/7/delete", ok: true},
		{pattern: "/app/admin/users/*/role", path: "/app/admin/users/12/role", ok: true},
		{pattern: "/app/docs/*", path: "/app/docs/3f9a/download", ok: true},
		{pattern: "/app/admin", path: "/app/admin", ok: true},
		{pattern: "/app/admin", path: "/app/admin/users", ok: false},
		{pattern: "/app/admin/users/*/delete", path: "/app/admin/users/7/role", ok: false},
	}

	for _, tc := range cases {
		if got := matchPath(tc.pattern, tc.path); got != tc.ok {
			t.Fatalf("pattern=%s path=%s expected=%v got=%v", tc.pattern, tc.path, tc.ok, got)
		}
	}
}

func TestIsAdminRole(t *testing.T) {
	if !IsAdminRole(RoleAdmin) || !IsAdminRole(RoleSuperAdmin) {
		t.Fatalf("admin and superAdmin must both pass the admin gate")
	}
	if IsAdminRole(RoleUser) || IsAdminRole("") {
		t.Fatalf("non-admin roles must not pass the admin gate")
	}
}
