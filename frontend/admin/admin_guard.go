package admin

import (
	"errors"

	"docsmith/infrastructure/rbac"
	"docsmith/models"
)

var (
	ErrSelfDelete     = errors.New("you cannot delete your own account")
	ErrSelfRoleChange = errors.New("you cannot change your own role")
	ErrAdminProtected = errors.New("only a super admin can modify an admin account")
	ErrInvalidRole    = errors.New("invalid role")
)

// CheckDeleteUser refuses self-deletion and protects admin accounts from
// non-superAdmin actors.
func CheckDeleteUser(actor, target models.User) error {
	if actor.ID == target.ID {
		return ErrSelfDelete
	}
	if rbac.IsAdminRole(target.Role) && actor.Role != rbac.RoleSuperAdmin {
		return ErrAdminProtected
	}
	return nil
}

// CheckRoleChange validates the new role, refuses self role-changes and
// protects admin accounts. Role changes between user and admin are the only
// ones the dashboard offers.
func CheckRoleChange(actor, target models.User, newRole string) error {
	if newRole != rbac.RoleUser && newRole != rbac.RoleAdmin {
		return ErrInvalidRole
	}
	if actor.ID == target.ID {
		return ErrSelfRoleChange
	}
	if rbac.IsAdminRole(target.Role) && actor.Role != rbac.RoleSuperAdmin {
		return ErrAdminProtected
	}
	return nil
}

// CheckBulkDelete refuses the whole batch when any target would be refused on
// its own. Nothing is deleted on refusal.
func CheckBulkDelete(actor models.User, targets []models.User) error {
	for _, target := range targets {
		if err := CheckDeleteUser(actor, target); err != nil {
			return err
		}
	}
	return nil
}
