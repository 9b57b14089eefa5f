package types

import (
	"github.com/google/uuid"
)

type (
	RegisterParams struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginParams struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AuthResponse struct {
		Token string `json:"token"`
	}

	UpdateWishlistParams struct {
		ProductIDs []uuid.UUID `json:"product_ids" validate:"required"`
	}

	QuoteParams struct {
		DeviceModel string          `json:"device_model" validate:"required"`
		Condition   DeviceCondition `json:"condition" validate:"required"`
	}

	CreateSubmissionParams struct {
		DeviceModel string          `json:"device_model" validate:"required"`
		Condition   DeviceCondition `json:"condition" validate:"required"`
		Notes       string          `json:"notes"`
	}

	ReviewSubmissionParams struct {
		Status SubmissionStatus `json:"status" validate:"required"`
		Notes  string           `json:"notes"`
	}

	CreateProductParams struct {
		SKU         string `json:"sku" validate:"required"`
		Title       string `json:"title" validate:"required"`
		Brand       string `json:"brand"`
		Category    string `json:"category"`
		Description string `json:"description"`
		BasePrice   int64  `json:"base_price" validate:"gte=0"`
		Published   bool   `json:"published"`
	}

	UpdateProductParams struct {
		Title       *string `json:"title"`
		Brand       *string `json:"brand"`
		Category    *string `json:"category"`
		Description *string `json:"description"`
		BasePrice   *int64  `json:"base_price"`
		Published   *bool   `json:"published"`
	}

	CreateStaffParams struct {
		Email       string       `json:"email" validate:"required,email"`
		Name        string       `json:"name" validate:"required"`
		Password    string       `json:"password" validate:"required,min=8"`
		Role        string       `json:"role"`
		Permissions []Permission `json:"permissions"`
	}

	UpdateStaffParams struct {
		Name        *string       `json:"name"`
		Role        *string       `json:"role"`
		Permissions *[]Permission `json:"permissions"`
		Disabled    *bool         `json:"disabled"`
	}

	UpdateBackupConfigParams struct {
		FullBackupFrequency        *FullFrequency        `json:"fullBackupFrequency"`
		IncrementalBackupFrequency *IncrementalFrequency `json:"incrementalBackupFrequency"`
		AutoBackupEnabled          *bool                 `json:"autoBackupEnabled"`
		RetentionDays              *int                  `json:"retentionDays" validate:"omitempty,gte=1"`
		CronExpression             *string               `json:"cronExpression"`
	}

	CreateBackupParams struct {
		Type BackupType `json:"type"`
		// IncludeExternalContent forces a commerce platform snapshot even for
		// an incremental backup.
		IncludeExternalContent bool `json:"include_external_content"`
	}

	RestoreParams struct {
		Collections []string `json:"collections"`
	}
)
