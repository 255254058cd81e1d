package api

import (
	"context"
	"net/http"
)

// FetchResolved loads one page of merged parent records, each optionally
// carrying its reassigned children.
func (c *Client) FetchResolved(ctx context.Context, page, pageSize int, search string) (*ResolvedPage, error) {
	var result ResolvedPage
	q := pagingQuery(page, pageSize, search)
	if err := c.do(ctx, http.MethodGet, "/customer/resolved", q, nil, &result, ErrLoadFailed); err != nil {
		return nil, err
	}
	return &result, nil
}
