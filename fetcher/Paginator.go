package fetcher

import (
	"context"
	"fmt"
)

// Pager yields pages of items. It has the same shape as the AWS SDK v2
// paginators so those can be adapted with a few lines.
type Pager[T any] interface {
	HasMorePages() bool
	NextPage(ctx context.Context) ([]T, error)
}

// FetchAll drains pager and concatenates every page in the order the service
// returned them. Errors from the pager are returned unchanged.
func FetchAll[T any](ctx context.Context, pager Pager[T]) ([]T, error) {
	results := make([]T, 0)
	for pager.HasMorePages() {
		items, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	return results, nil
}

// PageFunc issues one call for the page at token. The first call receives a nil
// token.
type PageFunc[P any] func(ctx context.Context, token *string) (P, error)

// FuncPager builds a Pager out of a page call and two accessors on the page
// value: one returning the named result array and one returning the
// continuation token.
type FuncPager[P any, T any] struct {
	Fetch PageFunc[P]
	Items func(page P) []T
	Next  func(page P) *string

	// StopOnDuplicateToken ends pagination if the service hands back the token
	// that was just sent.
	StopOnDuplicateToken bool

	token   *string
	started bool
}

func NewFuncPager[P any, T any](fetch PageFunc[P], items func(P) []T, next func(P) *string) *FuncPager[P, T] {
	return &FuncPager[P, T]{
		Fetch:                fetch,
		Items:                items,
		Next:                 next,
		StopOnDuplicateToken: true,
	}
}

func (p *FuncPager[P, T]) HasMorePages() bool {
	if !p.started {
		return true
	}
	return p.token != nil && len(*p.token) > 0
}

func (p *FuncPager[P, T]) NextPage(ctx context.Context) ([]T, error) {
	if !p.HasMorePages() {
		return nil, fmt.Errorf("no more pages available")
	}
	p.started = true

	page, err := p.Fetch(ctx, p.token)
	if err != nil {
		return nil, err
	}

	previous := p.token
	p.token = p.Next(page)
	if p.StopOnDuplicateToken && previous != nil && p.token != nil && *previous == *p.token {
		p.token = nil
	}

	return p.Items(page), nil
}
