package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	rows       []Entry
	err        error
	lastOffset int
	lastLimit  int
}

func (s *stubRepo) Window(_ context.Context, _ TimelineFilters, offset, limit int) ([]Entry, error) {
	s.lastOffset, s.lastLimit = offset, limit
	if s.err != nil {
		return nil, s.err
	}
	if offset >= len(s.rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.rows) {
		end = len(s.rows)
	}
	return s.rows[offset:end], nil
}

func entries(n int) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{ID: int64(i + 1), Action: "sale.create", Entity: "sale", EntityID: "x"}
	}
	return out
}

func TestTimelinePaging(t *testing.T) {
	repo := &stubRepo{rows: entries(45)}
	svc := NewService(repo)

	first, err := svc.Timeline(context.Background(), TimelineFilters{})
	require.NoError(t, err)
	assert.Len(t, first.Rows, 20)
	assert.Equal(t, PagingInfo{Page: 1, PageSize: 20, HasNext: true, NextPage: 2}, first.Paging)
	assert.Equal(t, 21, repo.lastLimit)

	last, err := svc.Timeline(context.Background(), TimelineFilters{Page: 3})
	require.NoError(t, err)
	assert.Len(t, last.Rows, 5)
	assert.Equal(t, 40, repo.lastOffset)
	assert.False(t, last.Paging.HasNext)
	assert.Equal(t, 2, last.Paging.PrevPage)
}

func TestTimelineClampsPageSize(t *testing.T) {
	repo := &stubRepo{}
	res, err := NewService(repo).Timeline(context.Background(), TimelineFilters{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Paging.PageSize)
	assert.Equal(t, 51, repo.lastLimit)
	assert.NotNil(t, res.Rows)
}

func TestTimelineErrors(t *testing.T) {
	_, err := NewService(nil).Timeline(context.Background(), TimelineFilters{})
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = NewService(&stubRepo{err: boom}).Timeline(context.Background(), TimelineFilters{})
	require.ErrorIs(t, err, boom)
}

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(TimelineFilters{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	where, args = buildWhere(TimelineFilters{From: from, Entity: "purchase", Action: "purchase.receive"})
	assert.Equal(t, " WHERE occurred_at >= $1 AND entity = $2 AND action = $3", where)
	assert.Equal(t, []any{from, "purchase", "purchase.receive"}, args)
}
