package ui

import (
	"context"
	"fmt"
	"sync"

	"dupcon/internal/api"
)

// mergeCall records one MergeGroup invocation.
type mergeCall struct {
	groupKey   string
	parentCode string
	parent     api.Customer
}

// fakeGateway records calls in order and serves canned responses. The
// hook funcs default to benign empty answers.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	loginFn func(username, password string) (*api.LoginResult, error)
	fetchFn func(page, pageSize int, search string) (*api.DuplicatesPage, error)
	updateFn func(cust api.Customer) error
	mergeFn func(groupKey, parentCode string, parent api.Customer) (*api.MergeResult, error)
	resolvedFn func(page, pageSize int, search string) (*api.ResolvedPage, error)

	updates []api.Customer
	merges  []mergeCall
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{}
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeGateway) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeGateway) Login(_ context.Context, username, password string) (*api.LoginResult, error) {
	f.record("login")
	if f.loginFn != nil {
		return f.loginFn(username, password)
	}
	return &api.LoginResult{Token: "test-token"}, nil
}

func (f *fakeGateway) FetchDuplicates(_ context.Context, page, pageSize int, search string) (*api.DuplicatesPage, error) {
	f.record(fmt.Sprintf("fetchDuplicates(page=%d,search=%q)", page, search))
	if f.fetchFn != nil {
		return f.fetchFn(page, pageSize, search)
	}
	return &api.DuplicatesPage{TotalPages: 1}, nil
}

func (f *fakeGateway) UpdateCustomer(_ context.Context, cust api.Customer) error {
	f.record("update:" + cust.CustCode)
	f.mu.Lock()
	f.updates = append(f.updates, cust)
	f.mu.Unlock()
	if f.updateFn != nil {
		return f.updateFn(cust)
	}
	return nil
}

func (f *fakeGateway) MergeGroup(_ context.Context, groupKey, parentCode string, parent api.Customer) (*api.MergeResult, error) {
	f.record("merge:" + groupKey)
	f.mu.Lock()
	f.merges = append(f.merges, mergeCall{groupKey: groupKey, parentCode: parentCode, parent: parent})
	f.mu.Unlock()
	if f.mergeFn != nil {
		return f.mergeFn(groupKey, parentCode, parent)
	}
	return &api.MergeResult{}, nil
}

func (f *fakeGateway) FetchResolved(_ context.Context, page, pageSize int, search string) (*api.ResolvedPage, error) {
	f.record(fmt.Sprintf("fetchResolved(page=%d,search=%q)", page, search))
	if f.resolvedFn != nil {
		return f.resolvedFn(page, pageSize, search)
	}
	return &api.ResolvedPage{TotalPages: 1}, nil
}
