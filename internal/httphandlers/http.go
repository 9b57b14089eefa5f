package httphandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resale/internal/backup"
	"resale/internal/docstore"
	"resale/internal/security"
	"resale/internal/service"
	"resale/internal/types"
	"resale/logger"
)

type ApiHandler struct {
	customerService service.CustomerService
	staffService    service.StaffService
	catalogService  service.CatalogService
	tradeInService  service.TradeInService
	backupService   service.BackupService
	auditService    service.AuditService
	tokens          *security.TokenManager
	triggerSecret   string
	validate        *validator.Validate
}

func NewApiHandler(customers service.CustomerService, staff service.StaffService,
	catalog service.CatalogService, tradeIn service.TradeInService,
	backups service.BackupService, audit service.AuditService,
	tokens *security.TokenManager, triggerSecret string) *ApiHandler {
	return &ApiHandler{
		customerService: customers,
		staffService:    staff,
		catalogService:  catalog,
		tradeInService:  tradeIn,
		backupService:   backups,
		auditService:    audit,
		tokens:          tokens,
		triggerSecret:   triggerSecret,
		validate:        validator.New(),
	}
}

// decode unmarshals and validates a request body into params.
func (handler *ApiHandler) decode(r *http.Request, params interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return handler.validate.Struct(params)
}

func (handler *ApiHandler) Register(w http.ResponseWriter, r *http.Request) {
	var params types.RegisterParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	customer, err := handler.customerService.Register(r.Context(), params)
	if errors.Is(err, service.ErrEmailTaken) {
		conflict(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "account created", customer)
}

func (handler *ApiHandler) Login(w http.ResponseWriter, r *http.Request) {
	var params types.LoginParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	auth, err := handler.customerService.Login(r.Context(), params)
	if errors.Is(err, service.ErrInvalidCredentials) {
		unauthorized(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "login successful", auth)
}

func (handler *ApiHandler) StaffLogin(w http.ResponseWriter, r *http.Request) {
	var params types.LoginParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	auth, err := handler.staffService.Login(r.Context(), params)
	if errors.Is(err, service.ErrInvalidCredentials) {
		unauthorized(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "login successful", auth)
}

func (handler *ApiHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	id, found := customerID(r)
	if !found {
		unauthorized(w, errMissingToken)
		return
	}

	wishlist, err := handler.customerService.GetWishlist(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "wishlist", wishlist)
}

func (handler *ApiHandler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	id, found := customerID(r)
	if !found {
		unauthorized(w, errMissingToken)
		return
	}

	var params types.UpdateWishlistParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	wishlist, err := handler.customerService.UpdateWishlist(r.Context(), id, params)
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "wishlist updated", wishlist)
}

func (handler *ApiHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var params types.QuoteParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	quote, err := handler.tradeInService.Quote(r.Context(), params)
	if errors.Is(err, service.ErrUnknownCondition) {
		badRequest(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "quote", quote)
}

func (handler *ApiHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	id, found := customerID(r)
	if !found {
		unauthorized(w, errMissingToken)
		return
	}

	var params types.CreateSubmissionParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	submission, err := handler.tradeInService.CreateSubmission(r.Context(), id, params)
	if errors.Is(err, service.ErrUnknownCondition) {
		badRequest(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "submission received", submission)
}

func (handler *ApiHandler) ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	id, found := customerID(r)
	if !found {
		unauthorized(w, errMissingToken)
		return
	}

	submissions, err := handler.tradeInService.ListForCustomer(r.Context(), id)
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "submissions", submissions)
}

func (handler *ApiHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	submission, err := handler.tradeInService.Get(r.Context(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		notFound(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "submission", submission)
}

func (handler *ApiHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := handler.tradeInService.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "submissions", submissions)
}

func (handler *ApiHandler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var params types.ReviewSubmissionParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	submission, err := handler.tradeInService.Review(r.Context(), id, params)
	if errors.Is(err, docstore.ErrNotFound) {
		notFound(w, err)
		return
	}
	if errors.Is(err, service.ErrSubmissionFinalized) {
		conflict(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "tradein.review",
		submission.ID.String(), string(submission.Status))
	ok(w, "submission reviewed", submission)
}

func (handler *ApiHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := handler.catalogService.ListPublished(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "products", products)
}

// ListCatalog is the staff view: every product, published or not.
func (handler *ApiHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := handler.catalogService.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "products", products)
}

func (handler *ApiHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	product, err := handler.catalogService.Get(r.Context(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		notFound(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "product", product)
}

func (handler *ApiHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var params types.CreateProductParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	product, err := handler.catalogService.CreateProduct(r.Context(), params)
	if err != nil {
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "product.create", product.ID.String(), product.SKU)
	ok(w, "product created", product)
}

func (handler *ApiHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var params types.UpdateProductParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	product, err := handler.catalogService.UpdateProduct(r.Context(), id, params)
	if errors.Is(err, docstore.ErrNotFound) {
		notFound(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "product.update", product.ID.String(), "")
	ok(w, "product updated", product)
}

func (handler *ApiHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := handler.catalogService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			notFound(w, err)
			return
		}
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "product.delete", id.String(), "")
	ok(w, "product deleted", struct{}{})
}

func (handler *ApiHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := handler.staffService.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "staff", staff)
}

func (handler *ApiHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var params types.CreateStaffParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	staff, err := handler.staffService.Create(r.Context(), params)
	if errors.Is(err, service.ErrEmailTaken) {
		conflict(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "staff.create", staff.ID.String(), staff.Email)
	ok(w, "staff created", staff)
}

func (handler *ApiHandler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var params types.UpdateStaffParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	staff, err := handler.staffService.Update(r.Context(), id, params)
	if errors.Is(err, docstore.ErrNotFound) {
		notFound(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "staff.update", staff.ID.String(), "")
	ok(w, "staff updated", staff)
}

func (handler *ApiHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, err)
		return
	}

	if err := handler.staffService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			notFound(w, err)
			return
		}
		serverError(w, err)
		return
	}

	handler.auditService.Record(r.Context(), staffActor(r), "staff.delete", id.String(), "")
	ok(w, "staff deleted", struct{}{})
}

func (handler *ApiHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := handler.auditService.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "audit log", entries)
}

func (handler *ApiHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var params types.CreateBackupParams
	if r.ContentLength != 0 {
		if err := handler.decode(r, &params); err != nil {
			badRequest(w, err)
			return
		}
	}
	if params.Type != "" && !params.Type.Valid() {
		badRequest(w, fmt.Errorf("unknown backup type: %s", params.Type))
		return
	}

	record, err := handler.backupService.Create(r.Context(), staffActor(r), params)
	if errors.Is(err, backup.ErrBackupInProgress) {
		conflict(w, err)
		return
	}
	if errors.Is(err, backup.ErrNothingToBackup) {
		ok(w, "no changes since the last backup", struct{}{})
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	ok(w, "backup created", record.Summary())
}

func (handler *ApiHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	summaries, err := handler.backupService.List(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "backups", summaries)
}

func (handler *ApiHandler) GetBackup(w http.ResponseWriter, r *http.Request) {
	record, err := handler.backupService.Get(r.Context(), chi.URLParam(r, "id"))
	if handler.writeBackupError(w, err) {
		return
	}
	ok(w, "backup", record.Summary())
}

func (handler *ApiHandler) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	result, err := handler.backupService.Download(r.Context(), chi.URLParam(r, "id"))
	if handler.writeBackupError(w, err) {
		return
	}
	defer result.Content.Close()

	w.Header().Add("Content-Length", fmt.Sprintf("%d", result.Stat.Size))
	w.Header().Add("Content-Type", "application/octet-stream")
	w.Header().Add("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Stat.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, result.Content); err != nil {
		logger.Error("backup download interrupted", zap.Error(err))
	}
}

func (handler *ApiHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var params types.RestoreParams
	if r.ContentLength != 0 {
		if err := handler.decode(r, &params); err != nil {
			badRequest(w, err)
			return
		}
	}

	result, err := handler.backupService.Restore(r.Context(), staffActor(r), chi.URLParam(r, "id"), params)
	if errors.Is(err, backup.ErrBackupInProgress) {
		conflict(w, err)
		return
	}
	if handler.writeBackupError(w, err) {
		return
	}
	ok(w, "restore completed", result)
}

func (handler *ApiHandler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	err := handler.backupService.Delete(r.Context(), staffActor(r), chi.URLParam(r, "id"))
	if handler.writeBackupError(w, err) {
		return
	}
	ok(w, "backup deleted", struct{}{})
}

func (handler *ApiHandler) GetBackupConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := handler.backupService.GetConfig(r.Context())
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "backup config", cfg)
}

func (handler *ApiHandler) UpdateBackupConfig(w http.ResponseWriter, r *http.Request) {
	var params types.UpdateBackupConfigParams
	if err := handler.decode(r, &params); err != nil {
		badRequest(w, err)
		return
	}

	cfg, err := handler.backupService.UpdateConfig(r.Context(), staffActor(r), params)
	if errors.Is(err, service.ErrInvalidBackupConfig) {
		badRequest(w, err)
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "backup config updated", cfg)
}

// AutoBackup is the externally triggerable scheduler tick. Safe to call on
// any cadence; redundant calls report skipped.
func (handler *ApiHandler) AutoBackup(w http.ResponseWriter, r *http.Request) {
	tick := handler.backupService.Trigger(r.Context(), "trigger:external")
	writeOutcome(w, tick)
}

func (handler *ApiHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := types.NewServerStatus()
	if err != nil {
		serverError(w, err)
		return
	}
	ok(w, "status", status)
}

// writeBackupError maps the backup sentinels onto HTTP codes. Returns true
// when a response was written.
func (handler *ApiHandler) writeBackupError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, backup.ErrInvalidBackupID):
		badRequest(w, err)
	case errors.Is(err, backup.ErrBackupNotFound):
		notFound(w, err)
	default:
		serverError(w, err)
	}
	return true
}
