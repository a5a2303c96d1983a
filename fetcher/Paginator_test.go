package fetcher

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPage struct {
	Items     []string
	NextToken *string
}

// mockService serves pre-built pages keyed by the token that requests them.
type mockService struct {
	pages    []mockPage
	tokens   []*string
	failAt   int
	failWith error
}

func newMockService(sizes ...int) *mockService {
	service := &mockService{failAt: -1}
	counter := 0
	for i, size := range sizes {
		page := mockPage{Items: make([]string, 0, size)}
		for j := 0; j < size; j++ {
			page.Items = append(page.Items, "item-"+strconv.Itoa(counter))
			counter++
		}
		if i < len(sizes)-1 {
			token := "token-" + strconv.Itoa(i+1)
			page.NextToken = &token
		}
		service.pages = append(service.pages, page)
	}
	return service
}

func (m *mockService) fetch(ctx context.Context, token *string) (mockPage, error) {
	m.tokens = append(m.tokens, token)
	index := 0
	if token != nil {
		index, _ = strconv.Atoi((*token)[len("token-"):])
	}
	if index == m.failAt {
		return mockPage{}, m.failWith
	}
	return m.pages[index], nil
}

func (m *mockService) pager() *FuncPager[mockPage, string] {
	return NewFuncPager(m.fetch,
		func(p mockPage) []string { return p.Items },
		func(p mockPage) *string { return p.NextToken })
}

func TestFetchAllConcatenatesPagesInOrder(t *testing.T) {
	service := newMockService(3, 0, 5, 2)

	results, err := FetchAll[string](context.Background(), service.pager())

	require.NoError(t, err)
	assert.Len(t, results, 10)
	for i, item := range results {
		assert.Equal(t, "item-"+strconv.Itoa(i), item)
	}
	assert.Len(t, service.tokens, 4)
	assert.Nil(t, service.tokens[0])
	assert.Equal(t, "token-3", *service.tokens[3])
}

func TestFetchAllEmptyResultIsNotAnError(t *testing.T) {
	service := newMockService(0)

	results, err := FetchAll[string](context.Background(), service.pager())

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFetchAllReturnsErrorUnchanged(t *testing.T) {
	cause := errors.New("AccessDeniedException")
	service := newMockService(2, 2, 2)
	service.failAt = 1
	service.failWith = cause

	results, err := FetchAll[string](context.Background(), service.pager())

	assert.Same(t, cause, err)
	assert.Nil(t, results)
}

func TestFuncPagerStopsOnDuplicateToken(t *testing.T) {
	token := "same"
	calls := 0
	pager := NewFuncPager(
		func(ctx context.Context, next *string) (mockPage, error) {
			calls++
			return mockPage{Items: []string{"x"}, NextToken: &token}, nil
		},
		func(p mockPage) []string { return p.Items },
		func(p mockPage) *string { return p.NextToken })

	results, err := FetchAll[string](context.Background(), pager)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"x", "x"}, results)
}

func TestFuncPagerTreatsEmptyTokenAsLastPage(t *testing.T) {
	empty := ""
	pager := NewFuncPager(
		func(ctx context.Context, next *string) (mockPage, error) {
			return mockPage{Items: []string{"only"}, NextToken: &empty}, nil
		},
		func(p mockPage) []string { return p.Items },
		func(p mockPage) *string { return p.NextToken })

	results, err := FetchAll[string](context.Background(), pager)

	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, results)
	assert.False(t, pager.HasMorePages())

	_, err = pager.NextPage(context.Background())
	assert.Error(t, err)
}
