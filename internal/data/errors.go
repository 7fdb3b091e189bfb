package data

import (
	"fmt"

	apperrors "github.com/blogforge/blogforge/internal/errors"
)

// mapDBErr funnels a database failure through the shared classifier,
// translating a not-found classification into the caller's sentinel. Other
// classifications (conflict, foreign key, timeout) surface as AppError values
// for the HTTP layer to map.
func mapDBErr(err error, notFound error, msg string) error {
	mapped := apperrors.MapDBError(err)
	if notFound != nil && apperrors.IsNotFound(mapped) {
		return notFound
	}
	return fmt.Errorf("%s: %w", msg, mapped)
}
