package admin

import (
	"strconv"
	"time"

	"docsmith/frontend/admin/listview"
	"docsmith/infrastructure/rbac"
	"docsmith/models"
)

// UserRow adapts a user to the table pipeline.
type UserRow struct {
	models.User
}

func (r UserRow) RecordID() string { return strconv.FormatInt(r.ID, 10) }

func (r UserRow) lastLoginOrZero() time.Time {
	if r.LastLogin == nil {
		return time.Time{}
	}
	return *r.LastLogin
}

// ContactRow adapts a contact message to the table pipeline.
type ContactRow struct {
	models.Contact
}

func (r ContactRow) RecordID() string { return r.ID }

// UserListConfig searches username and email, filters by role and status,
// and orders admins before regular users by default. The bootstrap superAdmin
// is excluded from every derived view.
func UserListConfig() listview.Config[UserRow] {
	return listview.Config[UserRow]{
		SearchFields: func(r UserRow) []string {
			return []string{r.DisplayName, r.Email}
		},
		Filters: map[string]func(UserRow) string{
			"role":   func(r UserRow) string { return r.Role },
			"status": func(r UserRow) string { return r.Status },
		},
		Comparators: map[string]func(a, b UserRow) int{
			"username": func(a, b UserRow) int { return listview.CompareFold(a.DisplayName, b.DisplayName) },
			"email":    func(a, b UserRow) int { return listview.CompareFold(a.Email, b.Email) },
			"role":     func(a, b UserRow) int { return listview.CompareFold(a.Role, b.Role) },
			"status":   func(a, b UserRow) int { return listview.CompareFold(a.Status, b.Status) },
			"joinDate": func(a, b UserRow) int { return listview.CompareTimes(a.CreatedAt, b.CreatedAt) },
			"lastLogin": func(a, b UserRow) int {
				return listview.CompareTimes(a.lastLoginOrZero(), b.lastLoginOrZero())
			},
		},
		Default: func(a, b UserRow) int {
			aAdmin := rbac.IsAdminRole(a.Role)
			bAdmin := rbac.IsAdminRole(b.Role)
			if aAdmin != bAdmin {
				if aAdmin {
					return -1
				}
				return 1
			}
			return listview.CompareFold(a.DisplayName, b.DisplayName)
		},
		Exclude: func(r UserRow) bool { return r.Role == rbac.RoleSuperAdmin },
	}
}

// ContactListConfig searches sender name and message text and shows the
// newest messages first by default.
func ContactListConfig() listview.Config[ContactRow] {
	return listview.Config[ContactRow]{
		SearchFields: func(r ContactRow) []string {
			return []string{r.Name, r.Message}
		},
		Comparators: map[string]func(a, b ContactRow) int{
			"name":  func(a, b ContactRow) int { return listview.CompareFold(a.Name, b.Name) },
			"email": func(a, b ContactRow) int { return listview.CompareFold(a.Email, b.Email) },
			"createdAt": func(a, b ContactRow) int {
				return listview.CompareTimes(a.CreatedAt, b.CreatedAt)
			},
		},
		Default: func(a, b ContactRow) int {
			return -listview.CompareTimes(a.CreatedAt, b.CreatedAt)
		},
	}
}

func toUserRows(users []models.User) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{User: u})
	}
	return rows
}

func toContactRows(contacts []models.Contact) []ContactRow {
	rows := make([]ContactRow, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, ContactRow{Contact: c})
	}
	return rows
}
