package api

import (
	"context"
	"io"
)

type (
	Service interface {
		Login(ctx context.Context, email, password string) (string, error)
		ListBackups(ctx context.Context) ([]Backup, error)
		CreateBackup(ctx context.Context, params CreateBackupParams) (Backup, error)
		RestoreBackup(ctx context.Context, backupID string, params RestoreParams) (RestoreResult, error)
		DeleteBackup(ctx context.Context, backupID string) error
		DownloadBackup(ctx context.Context, backupID string) (io.ReadCloser, error)
		GetBackupConfig(ctx context.Context) (BackupConfig, error)
		UpdateBackupConfig(ctx context.Context, params UpdateBackupConfigParams) (BackupConfig, error)
		Status(ctx context.Context) (ServerStatus, error)
	}

	service struct {
		apiClient Client
	}
)

func NewService(apiClient Client) Service {
	return service{apiClient: apiClient}
}

func (s service) Login(ctx context.Context, email, password string) (string, error) {
	var response struct {
		Data AuthResponse `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "staff/login",
		Body:     LoginParams{Email: email, Password: password},
		Response: &response,
	})
	return response.Data.Token, err
}

func (s service) ListBackups(ctx context.Context) ([]Backup, error) {
	var response struct {
		Data []Backup `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "backups",
		Response: &response,
	})
	return response.Data, err
}

func (s service) CreateBackup(ctx context.Context, params CreateBackupParams) (Backup, error) {
	var response struct {
		Data Backup `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "backups",
		Body:     params,
		Response: &response,
	})
	return response.Data, err
}

func (s service) RestoreBackup(ctx context.Context, backupID string, params RestoreParams) (RestoreResult, error) {
	var response struct {
		Data RestoreResult `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "POST",
		Path:     "backups/" + backupID + "/restore",
		Body:     params,
		Response: &response,
	})
	return response.Data, err
}

func (s service) DeleteBackup(ctx context.Context, backupID string) error {
	return s.apiClient.Do(ctx, Params{
		Method: "DELETE",
		Path:   "backups/" + backupID,
	})
}

func (s service) DownloadBackup(ctx context.Context, backupID string) (io.ReadCloser, error) {
	return s.apiClient.Download(ctx, Params{
		Method: "GET",
		Path:   "backups/" + backupID + "/download",
	})
}

func (s service) GetBackupConfig(ctx context.Context) (BackupConfig, error) {
	var response struct {
		Data BackupConfig `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "backups/config",
		Response: &response,
	})
	return response.Data, err
}

func (s service) UpdateBackupConfig(ctx context.Context, params UpdateBackupConfigParams) (BackupConfig, error) {
	var response struct {
		Data BackupConfig `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "PUT",
		Path:     "backups/config",
		Body:     params,
		Response: &response,
	})
	return response.Data, err
}

func (s service) Status(ctx context.Context) (ServerStatus, error) {
	var response struct {
		Data ServerStatus `json:"data"`
	}
	err := s.apiClient.Do(ctx, Params{
		Method:   "GET",
		Path:     "status",
		Response: &response,
	})
	return response.Data, err
}
