package admin

import (
	"docsmith/infrastructure/rbac"
	"docsmith/models"
)

// DashboardStats are the headline numbers above the admin tables.
type DashboardStats struct {
	TotalUsers    int
	ActiveUsers   int
	AdminUsers    int
	TotalContacts int
}

// ComputeStats derives the dashboard numbers from the full snapshots. The
// bootstrap superAdmin is not counted; the dashboard only manages regular
// accounts.
func ComputeStats(users []models.User, contacts []models.Contact) DashboardStats {
	stats := DashboardStats{TotalContacts: len(contacts)}
	for _, u := range users {
		if u.Role == rbac.RoleSuperAdmin {
			continue
		}
		stats.TotalUsers++
		if u.Status == "active" {
			stats.ActiveUsers++
		}
		if u.Role == rbac.RoleAdmin {
			stats.AdminUsers++
		}
	}
	return stats
}
