package services

import "loadboard-route-service/internal/domain"

const defaultPageSize = 50

// Page describes one slice of the final ranked route list.
type Page struct {
	Page            int
	PageSize        int
	TotalPages      int
	TotalRoutes     int
	RoutesOnPage    int
	HasNextPage     bool
	HasPreviousPage bool
	NextPage        *int
	PreviousPage    *int
}

// Paginate slices the ranked, capped route list. Page numbers are 1-based;
// out-of-range pages return an empty slice with intact metadata, so walking
// page=1..total_pages reconstructs the full list exactly once.
func Paginate(routes []domain.RouteOption, page, pageSize int) ([]domain.RouteOption, Page) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(routes)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	slice := routes[start:end]

	meta := Page{
		Page:            page,
		PageSize:        pageSize,
		TotalPages:      totalPages,
		TotalRoutes:     total,
		RoutesOnPage:    len(slice),
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
	if meta.HasNextPage {
		next := page + 1
		meta.NextPage = &next
	}
	if meta.HasPreviousPage {
		prev := page - 1
		meta.PreviousPage = &prev
	}

	return slice, meta
}
