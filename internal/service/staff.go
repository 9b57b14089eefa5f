package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/misc"
	"resale/internal/security"
	"resale/internal/types"
)

type (
	StaffService interface {
		Login(ctx context.Context, params types.LoginParams) (*types.AuthResponse, error)
		Create(ctx context.Context, params types.CreateStaffParams) (*types.Staff, error)
		Update(ctx context.Context, id uuid.UUID, params types.UpdateStaffParams) (*types.Staff, error)
		Delete(ctx context.Context, id uuid.UUID) error
		Get(ctx context.Context, id uuid.UUID) (*types.Staff, error)
		List(ctx context.Context) ([]*types.Staff, error)
		// EnsureAdmin creates the bootstrap admin account when the staff
		// collection is empty. Returns the generated password, empty when no
		// account was created.
		EnsureAdmin(ctx context.Context, email string) (string, error)
	}

	staffService struct {
		staffRepository database.StaffRepository
		tokens          *security.TokenManager
	}
)

func NewStaffService(staffRepo database.StaffRepository, tokens *security.TokenManager) StaffService {
	return &staffService{
		staffRepository: staffRepo,
		tokens:          tokens,
	}
}

func (s *staffService) Login(ctx context.Context, params types.LoginParams) (*types.AuthResponse, error) {
	staff, err := s.staffRepository.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(params.Email)))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if staff.Disabled {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(params.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(staff.ID, security.KindStaff)
	if err != nil {
		return nil, err
	}
	return &types.AuthResponse{Token: token}, nil
}

func (s *staffService) Create(ctx context.Context, params types.CreateStaffParams) (*types.Staff, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	existing, err := s.staffRepository.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	staff := &types.Staff{
		ID:           uuid.New(),
		Email:        email,
		Name:         params.Name,
		Role:         params.Role,
		Permissions:  params.Permissions,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.staffRepository.Save(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *staffService) Update(ctx context.Context, id uuid.UUID, params types.UpdateStaffParams) (*types.Staff, error) {
	staff, err := s.staffRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		staff.Name = *params.Name
	}
	if params.Role != nil {
		staff.Role = *params.Role
	}
	if params.Permissions != nil {
		staff.Permissions = *params.Permissions
	}
	if params.Disabled != nil {
		staff.Disabled = *params.Disabled
	}
	staff.UpdatedAt = time.Now()

	if err := s.staffRepository.Save(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *staffService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.staffRepository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return docstore.ErrNotFound
	}
	return nil
}

func (s *staffService) Get(ctx context.Context, id uuid.UUID) (*types.Staff, error) {
	return s.staffRepository.FindByID(ctx, id)
}

func (s *staffService) List(ctx context.Context) ([]*types.Staff, error) {
	return s.staffRepository.FindAll(ctx)
}

func (s *staffService) EnsureAdmin(ctx context.Context, email string) (string, error) {
	all, err := s.staffRepository.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(all) > 0 {
		return "", nil
	}

	password, err := misc.DefaultRandomIdGenerator.Generate(16)
	if err != nil {
		return "", err
	}
	_, err = s.Create(ctx, types.CreateStaffParams{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     types.RoleAdmin,
	})
	if err != nil {
		return "", err
	}
	return password, nil
}
