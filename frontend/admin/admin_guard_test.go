package admin

import (
	"errors"
	"testing"

	"docsmith/infrastructure/rbac"
	"docsmith/models"
)

func TestCheckDeleteUser(t *testing.T) {
	admin := models.User{ID: 1, Role: rbac.RoleAdmin}
	super := models.User{ID: 2, Role: rbac.RoleSuperAdmin}
	regular := models.User{ID: 3, Role: rbac.RoleUser}
	otherAdmin := models.User{ID: 4, Role: rbac.RoleAdmin}

	if err := CheckDeleteUser(admin, admin); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if err := CheckDeleteUser(admin, otherAdmin); !errors.Is(err, ErrAdminProtected) {
		t.Fatalf("expected ErrAdminProtected for admin deleting admin, got %v", err)
	}
	if err := CheckDeleteUser(super, otherAdmin); err != nil {
		t.Fatalf("superAdmin should delete admins, got %v", err)
	}
	if err := CheckDeleteUser(admin, regular); err != nil {
		t.Fatalf("admin should delete regular users, got %v", err)
	}
	if err := CheckDeleteUser(super, super); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("self-delete applies to superAdmin too, got %v", err)
	}
}

func TestCheckRoleChange(t *testing.T) {
	admin := models.User{ID: 1, Role: rbac.RoleAdmin}
	super := models.User{ID: 2, Role: rbac.RoleSuperAdmin}
	regular := models.User{ID: 3, Role: rbac.RoleUser}
	otherAdmin := models.User{ID: 4, Role: rbac.RoleAdmin}

	if err := CheckRoleChange(admin, regular, rbac.RoleAdmin); err != nil {
		t.Fatalf("admin should promote a user, got %v", err)
	}
	if err := CheckRoleChange(admin, otherAdmin, rbac.RoleUser); !errors.Is(err, ErrAdminProtected) {
		t.Fatalf("expected ErrAdminProtected for admin demoting admin, got %v", err)
	}
	if err := CheckRoleChange(super, otherAdmin, rbac.RoleUser); err != nil {
		t.Fatalf("superAdmin should demote admins, got %v", err)
	}
	if err := CheckRoleChange(super, super, rbac.RoleUser); !errors.Is(err, ErrSelfRoleChange) {
		t.Fatalf("superAdmin demoting themselves must be refused, got %v", err)
	}
	if err := CheckRoleChange(admin, admin, rbac.RoleUser); !errors.Is(err, ErrSelfRoleChange) {
		t.Fatalf("admin changing their own role must be refused, got %v", err)
	}
	if err := CheckRoleChange(super, regular, rbac.RoleSuperAdmin); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("promoting to superAdmin must be refused, got %v", err)
	}
	if err := CheckRoleChange(super, regular, "owner"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("unknown roles must be refused, got %v", err)
	}
}

func TestCheckBulkDelete_RefusesWholeBatch(t *testing.T) {
	admin := models.User{ID: 1, Role: rbac.RoleAdmin}
	targets := []models.User{
		{ID: 3, Role: rbac.RoleUser},
		{ID: 4, Role: rbac.RoleAdmin},
		{ID: 5, Role: rbac.RoleUser},
	}

	if err := CheckBulkDelete(admin, targets); !errors.Is(err, ErrAdminProtected) {
		t.Fatalf("one protected target must refuse the batch, got %v", err)
	}

	withSelf := []models.User{{ID: 1, Role: rbac.RoleAdmin}, {ID: 3, Role: rbac.RoleUser}}
	if err := CheckBulkDelete(admin, withSelf); !errors.Is(err, ErrSelfDelete) {
		t.Fatalf("actor in selection must refuse the batch, got %v", err)
	}

	clean := []models.User{{ID: 3, Role: rbac.RoleUser}, {ID: 5, Role: rbac.RoleUser}}
	if err := CheckBulkDelete(admin, clean); err != nil {
		t.Fatalf("clean batch should pass, got %v", err)
	}
}
