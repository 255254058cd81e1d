package ui

import (
	"context"

	"dupcon/internal/api"
)

// Gateway is the slice of the API client the pages use. api.Client
// satisfies it; tests substitute a fake to observe calls without a
// server.
type Gateway interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	FetchDuplicates(ctx context.Context, page, pageSize int, search string) (*api.DuplicatesPage, error)
	UpdateCustomer(ctx context.Context, cust api.Customer) error
	MergeGroup(ctx context.Context, groupKey, parentCode string, parent api.Customer) (*api.MergeResult, error)
	FetchResolved(ctx context.Context, page, pageSize int, search string) (*api.ResolvedPage, error)
}
