package metering

import "context"

// Page is one page of a cursor-paginated list endpoint.
type Page[T any] struct {
	Data     []T    `json:"data"`
	NextPage string `json:"next_page"`
}

// Paginate drains a cursor-paginated endpoint into a single slice, preserving
// page order and within-page order. Pages are fetched strictly sequentially;
// the first error aborts the accumulation and discards fetched pages.
func Paginate[T any](ctx context.Context, fetch func(ctx context.Context, cursor string) (Page[T], error)) ([]T, error) {
	var out []T
	cursor := ""
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Data...)
		if page.NextPage == "" {
			return out, nil
		}
		cursor = page.NextPage
	}
}
