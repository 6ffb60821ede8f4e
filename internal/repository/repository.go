// Package repository defines the storage contract for tasks. Backends live in
// the sqlite and bolt subpackages.
package repository

import (
	"context"

	"todo-store/internal/domain"
	"todo-store/internal/query"
)

// Repository defines the interface for task storage operations
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *domain.Task) error

	// Read operations
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	FetchTasks(ctx context.Context, filter query.Expr) ([]*domain.Task, error)
	CountTasks(ctx context.Context) (int, error)

	// Update operations
	UpdateTask(ctx context.Context, task *domain.Task) error

	// Delete operations
	DeleteTask(ctx context.Context, id string) error

	// Utility
	Close() error
}
