package model

import (
	"context"
	"errors"
	"strings"

	"storerate/internal/auth"
	"storerate/internal/config"
	"storerate/internal/entity"

	"gorm.io/gorm"
)

// SeedAdminUser creates the bootstrap administrator account from
// configuration. It is a no-op when no admin credentials are configured or
// when the account already exists.
func SeedAdminUser(ctx context.Context, repo Repository, cfg config.Config) error {
	if repo == nil {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	password := strings.TrimSpace(cfg.AdminPassword)
	if email == "" || password == "" {
		return nil
	}

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to create
	default:
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entity.DbUser{
		Name:         strings.TrimSpace(cfg.AdminName),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.UserRoleAdmin,
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}

	if err := repo.CreateUser(ctx, admin); err != nil {
		// Another instance may seed concurrently; the unique email index
		// makes that benign.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}
