package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"todo-tracker/internal/models"
)

func TestUserRepository_Create_Get_List(t *testing.T) {
	dbx := setupDB(t)
	repo := NewUserRepository(dbx)

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "testuser@example.com",
		PasswordHash: "hash",
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("UserRepository.Create: %v", err)
	}

	byID, err := repo.GetByID(context.Background(), user.ID.String())
	if err != nil {
		t.Fatalf("UserRepository.GetByID: %v", err)
	}
	if byID == nil || byID.Email != "testuser@example.com" || byID.Role != "admin" {
		t.Errorf("GetByID mismatch: %#v", byID)
	}

	byEmail, err := repo.GetByEmail(context.Background(), "testuser@example.com")
	if err != nil {
		t.Fatalf("UserRepository.GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetByEmail mismatch: %#v", byEmail)
	}

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("UserRepository.List: %v", err)
	}
	if len(list) != 1 || list[0].ID != user.ID {
		t.Errorf("List unexpected: %+v", list)
	}

	count, err := repo.Count(context.Background())
	if err != nil || count != 1 {
		t.Errorf("Count = %d, %v", count, err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	dbx := setupDB(t)
	repo := NewUserRepository(dbx)

	insertUser(t, dbx, "A", "dup@example.com", "employee")

	now := time.Now().UTC()
	err := repo.Create(context.Background(), &models.User{
		ID:           uuid.New(),
		Name:         "B",
		Email:        "dup@example.com",
		PasswordHash: "hash",
		Role:         "employee",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err == nil {
		t.Fatal("expected error on duplicate email, got nil")
	}
}

func TestUserRepository_GetByEmail_NonExistent(t *testing.T) {
	dbx := setupDB(t)
	repo := NewUserRepository(dbx)

	user, err := repo.GetByEmail(context.Background(), "missing@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for non-existent user, got %#v", user)
	}
}
