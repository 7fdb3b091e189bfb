package httpx

import "context"

// Window is one page of a listing plus a hint whether more rows exist.
type Window[T any] struct {
	Items      []T  `json:"items"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	HasMore    bool `json:"has_more"`
	NextOffset int  `json:"next_offset,omitempty"`
}

// PageFetcher loads limit rows starting at offset.
type PageFetcher[T any] func(ctx context.Context, limit, offset int) ([]T, error)

// FetchWindow asks the fetcher for one extra row to learn whether a further
// page exists, then trims the overflow before returning.
func FetchWindow[T any](ctx context.Context, fetch PageFetcher[T], limit, offset int) (Window[T], error) {
	items, err := fetch(ctx, limit+1, offset)
	if err != nil {
		return Window[T]{}, err
	}

	w := Window[T]{Items: items, Limit: limit, Offset: offset}
	if len(items) > limit {
		w.Items = items[:limit]
		w.HasMore = true
		w.NextOffset = offset + limit
	}
	if w.Items == nil {
		w.Items = []T{}
	}
	return w, nil
}
