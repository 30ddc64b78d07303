package sql

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"storerate/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestRepository(t *testing.T) *GormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&entity.DbUser{}, &entity.DbStore{}, &entity.DbRating{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	return NewGormRepository(db)
}

func seedUser(t *testing.T, repo *GormRepository, name, email, role string) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedStore(t *testing.T, repo *GormRepository, name string) *entity.DbStore {
	t.Helper()
	owner := seedUser(t, repo, name+" Owner", fmt.Sprintf("owner-%s@example.com", name), entity.UserRoleStoreOwner)
	store := &entity.DbStore{Name: name, OwnerID: owner.ID}
	if err := repo.db.Create(store).Error; err != nil {
		t.Fatalf("failed to seed store %s: %v", name, err)
	}
	return store
}

func strPtr(s string) *string { return &s }
