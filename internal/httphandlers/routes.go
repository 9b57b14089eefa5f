package httphandlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"resale/internal/types"
)

func Routes(h *ApiHandler) chi.Router {
	r := chi.NewRouter()
	r.Route("/v1", func(rr chi.Router) {
		rr.Post("/auth/register", h.Register)
		rr.Post("/auth/login", h.Login)
		rr.Post("/staff/login", h.StaffLogin)

		rr.Get("/products", h.ListProducts)
		rr.Get("/products/{id}", h.GetProduct)
		rr.Post("/tradein/quote", h.Quote)

		rr.Group(func(customer chi.Router) {
			customer.Use(h.requireCustomer)
			customer.Get("/customers/me/wishlist", h.GetWishlist)
			customer.Put("/customers/me/wishlist", h.UpdateWishlist)
			customer.Post("/tradein/submissions", h.CreateSubmission)
			customer.Get("/tradein/submissions", h.ListMySubmissions)
		})

		rr.With(h.requireStaff(types.PermissionCatalogManage)).Post("/products", h.CreateProduct)
		rr.With(h.requireStaff(types.PermissionCatalogManage)).Put("/products/{id}", h.UpdateProduct)
		rr.With(h.requireStaff(types.PermissionCatalogManage)).Delete("/products/{id}", h.DeleteProduct)

		rr.With(h.requireStaff(types.PermissionCatalogManage)).Get("/staff/products", h.ListCatalog)

		rr.With(h.requireStaff(types.PermissionTradeInReview)).Get("/staff/tradein/submissions", h.ListSubmissions)
		rr.With(h.requireStaff(types.PermissionTradeInReview)).Get("/staff/tradein/submissions/{id}", h.GetSubmission)
		rr.With(h.requireStaff(types.PermissionTradeInReview)).Patch("/staff/tradein/submissions/{id}", h.ReviewSubmission)

		rr.With(h.requireStaff(types.PermissionStaffManage)).Get("/staff", h.ListStaff)
		rr.With(h.requireStaff(types.PermissionStaffManage)).Post("/staff", h.CreateStaff)
		rr.With(h.requireStaff(types.PermissionStaffManage)).Put("/staff/{id}", h.UpdateStaff)
		rr.With(h.requireStaff(types.PermissionStaffManage)).Delete("/staff/{id}", h.DeleteStaff)

		rr.With(h.requireStaff(types.PermissionAuditView)).Get("/audit", h.ListAudit)

		rr.With(h.requireStaff(types.PermissionBackupCreate)).Post("/backups", h.CreateBackup)
		rr.With(h.requireStaff(types.PermissionBackupView)).Get("/backups", h.ListBackups)
		rr.With(h.requireStaff(types.PermissionBackupView)).Get("/backups/{id}", h.GetBackup)
		rr.With(h.requireStaff(types.PermissionBackupView)).Get("/backups/{id}/download", h.DownloadBackup)
		rr.With(h.requireStaff(types.PermissionBackupRestore)).Post("/backups/{id}/restore", h.RestoreBackup)
		rr.With(h.requireStaff(types.PermissionBackupDelete)).Delete("/backups/{id}", h.DeleteBackup)
		rr.With(h.requireStaff(types.PermissionBackupConfig)).Get("/backups/config", h.GetBackupConfig)
		rr.With(h.requireStaff(types.PermissionBackupConfig)).Put("/backups/config", h.UpdateBackupConfig)
		rr.With(h.requireTrigger).Post("/backups/auto", h.AutoBackup)

		rr.With(h.requireStaff(types.PermissionBackupView)).Get("/status", h.Status)

		rr.Get("/h", func(writer http.ResponseWriter, request *http.Request) {
			ok(writer, "Hoi, we're live!", struct{}{})
		})
	})
	return r
}
