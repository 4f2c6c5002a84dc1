package http

import (
	"net/http"

	adminpage "docsmith/frontend/admin"
	contactpage "docsmith/frontend/contact"
	generatorpage "docsmith/frontend/generator"
	"docsmith/frontend/login"
	mydocspage "docsmith/frontend/mydocs"
	"docsmith/infrastructure/rbac"

	"github.com/go-chi/chi/v5"
)

// RegisterLoginRoutes registers login/signup/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/signup", login.CreateAccountHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterAdminRoutes registers admin-only routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_DASHBOARD_VIEW", http.MethodGet, "/app/admin")
	r.Get("/admin", adminpage.AdminDashboardQueryHandler(s.DB))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USER_DELETE", http.MethodPost, "/app/admin/users/delete")
	r.Post("/admin/users/delete", adminpage.DeleteUserCommandHandler(s.DB, s.Audit, s.SessionCache, s.UserCache))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USER_ROLE_EDIT", http.MethodPost, "/app/admin/users/role")
	r.Post("/admin/users/role", adminpage.UpdateUserRoleCommandHandler(s.DB, s.Audit, s.SessionCache, s.UserCache))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USER_DELETE_BULK", http.MethodPost, "/app/admin/users/bulk-delete")
	r.Post("/admin/users/bulk-delete", adminpage.BulkDeleteUsersCommandHandler(s.DB, s.Audit, s.SessionCache, s.UserCache))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_CONTACT_DELETE", http.MethodPost, "/app/admin/contacts/delete")
	r.Post("/admin/contacts/delete", adminpage.DeleteContactCommandHandler(s.DB, s.Audit))

	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_CONTACT_DELETE_BULK", http.MethodPost, "/app/admin/contacts/bulk-delete")
	r.Post("/admin/contacts/bulk-delete", adminpage.BulkDeleteContactsCommandHandler(s.DB, s.Audit))
	return r
}

// RegisterFrontendRoutes registers authenticated routes.
func (s *Server) RegisterFrontendRoutes(r chi.Router) chi.Router {
	s.RegisterGeneratorRoutes(r)
	s.RegisterMyDocsRoutes(r)

	s.addForAllRoles("CONTACT_VIEW", http.MethodGet, "/app/contact")
	r.Get("/contact", contactpage.ContactPageQueryHandler())
	s.addForAllRoles("CONTACT_SUBMIT", http.MethodPost, "/app/contact")
	r.Post("/contact", contactpage.SubmitContactCommandHandler(s.DB))

	return r
}

func (s *Server) RegisterGeneratorRoutes(r chi.Router) {
	s.addForAllRoles("GENERATOR_EMAIL_VIEW", http.MethodGet, "/app/generator/email")
	r.Get("/generator/email", generatorpage.EmailGeneratorPageQueryHandler())

	s.addForAllRoles("GENERATOR_EMAIL_AI", http.MethodPost, "/app/generator/email/ai")
	r.Post("/generator/email/ai", generatorpage.GenerateEmailFieldsCommandHandler(s.LLM))

	s.addForAllRoles("GENERATOR_EMAIL_PDF", http.MethodPost, "/app/generator/email/pdf")
	r.Post("/generator/email/pdf", generatorpage.DownloadEmailPDFCommandHandler(s.DB))

	s.addForAllRoles("GENERATOR_APPLICATION_VIEW", http.MethodGet, "/app/generator/application")
	r.Get("/generator/application", generatorpage.ApplicationGeneratorPageQueryHandler())

	s.addForAllRoles("GENERATOR_APPLICATION_AI", http.MethodPost, "/app/generator/application/ai")
	r.Post("/generator/application/ai", generatorpage.GenerateApplicationFieldsCommandHandler(s.LLM))

	s.addForAllRoles("GENERATOR_APPLICATION_PDF", http.MethodPost, "/app/generator/application/pdf")
	r.Post("/generator/application/pdf", generatorpage.DownloadApplicationPDFCommandHandler(s.DB))
}

func (s *Server) RegisterMyDocsRoutes(r chi.Router) {
	s.addForAllRoles("MYDOCS_VIEW", http.MethodGet, "/app/docs")
	r.Get("/docs", mydocspage.MyDocsPageQueryHandler(s.DB))

	s.addForAllRoles("MYDOCS_DOWNLOAD", http.MethodGet, "/app/docs/download")
	r.Get("/docs/download", mydocspage.DownloadDocumentQueryHandler(s.DB))

	s.addForAllRoles("MYDOCS_DELETE", http.MethodPost, "/app/docs/delete")
	r.Post("/docs/delete", mydocspage.DeleteDocumentCommandHandler(s.DB))
}

// addForAllRoles grants a route to every signed-in role.
func (s *Server) addForAllRoles(code, method, path string) {
	s.Rbac.Add(rbac.RoleUser, code, method, path)
	s.Rbac.Add(rbac.RoleAdmin, code, method, path)
	s.Rbac.Add(rbac.RoleSuperAdmin, code, method, path)
}
