package api

import (
	"context"
	"net/http"
)

// FetchDuplicates loads one page of unresolved duplicate records, filtered
// by the free-text search.
func (c *Client) FetchDuplicates(ctx context.Context, page, pageSize int, search string) (*DuplicatesPage, error) {
	var result DuplicatesPage
	q := pagingQuery(page, pageSize, search)
	if err := c.do(ctx, http.MethodGet, "/customer/duplicates", q, nil, &result, ErrLoadFailed); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateCustomer persists a (possibly partial) record keyed by CustCode.
// The server answers 2xx with no required body.
func (c *Client) UpdateCustomer(ctx context.Context, cust Customer) error {
	return c.do(ctx, http.MethodPut, "/customer/update", nil, cust, nil, ErrUpdateFailed)
}

// MergeGroup asks the server to reassign the group's children under the
// chosen parent. parent is the effective parent record, edits included.
func (c *Client) MergeGroup(ctx context.Context, groupKey, parentCode string, parent Customer) (*MergeResult, error) {
	var result MergeResult
	body := mergeRequest{GroupKey: groupKey, ParentCustCode: parentCode, ParentCustomer: parent}
	if err := c.do(ctx, http.MethodPost, "/customer/merge", nil, body, &result, ErrMergeFailed); err != nil {
		return nil, err
	}
	return &result, nil
}
