//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// MediaAsset references an image stored on the hosted media service.
// PublicID is the provider-side identifier needed for later deletion;
// URL is the public delivery URL embedded in API responses.
type MediaAsset struct {
	PublicID string `json:"public_id" db:"public_id"`
	URL      string `json:"url"       db:"url"`
}

// IsZero reports whether no asset is referenced.
func (a MediaAsset) IsZero() bool {
	return strings.TrimSpace(a.PublicID) == "" && strings.TrimSpace(a.URL) == ""
}
