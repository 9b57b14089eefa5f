package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resale/internal/database"
	"resale/internal/types"
	"resale/logger"
)

type (
	// AuditService records who did what. Recording is best-effort: a failed
	// audit write never fails the operation it describes.
	AuditService interface {
		Record(ctx context.Context, actor, action, resource, detail string)
		List(ctx context.Context) ([]*types.AuditEntry, error)
	}

	auditService struct {
		auditRepository database.AuditRepository
	}
)

func NewAuditService(auditRepo database.AuditRepository) AuditService {
	return &auditService{auditRepository: auditRepo}
}

func (a *auditService) Record(ctx context.Context, actor, action, resource, detail string) {
	entry := &types.AuditEntry{
		ID:        uuid.New(),
		Actor:     actor,
		Action:    action,
		Resource:  resource,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := a.auditRepository.Save(ctx, entry); err != nil {
		logger.Error("failed to write audit entry",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.Error(err))
	}
}

func (a *auditService) List(ctx context.Context) ([]*types.AuditEntry, error) {
	return a.auditRepository.FindAll(ctx)
}
