package httpx

const (
	// SessionCookieName is the cookie that carries the signed session token.
	SessionCookieName = "jwt"

	defaultListLimit = 20
	maxListLimit     = 100

	// maxUploadBytes bounds multipart request bodies (form fields plus one image).
	maxUploadBytes = 10 << 20
)
