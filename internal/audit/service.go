package audit

import (
	"context"
	"errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

// Repository reads audit_logs.
type Repository interface {
	Window(ctx context.Context, filters TimelineFilters, offset, limit int) ([]Entry, error)
}

// Service serves the audit timeline.
type Service struct {
	repo Repository
}

// NewService constructs the timeline service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var errNoRepository = errors.New("audit: repository not configured")

// Timeline returns one page of entries, newest first.
func (s *Service) Timeline(ctx context.Context, filters TimelineFilters) (Result, error) {
	if s.repo == nil {
		return Result{}, errNoRepository
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	// one extra row tells us whether another page exists
	rows, err := s.repo.Window(ctx, filters, (page-1)*pageSize, pageSize+1)
	if err != nil {
		return Result{}, err
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	if rows == nil {
		rows = []Entry{}
	}
	return Result{Rows: rows, Paging: paging}, nil
}
