package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "

	// NotesPerPage is the fixed page size of note listings.
	NotesPerPage = 10

	// MaxProfilePictureSize is the largest accepted profile picture, in bytes.
	MaxProfilePictureSize = 2 * 1024 * 1024
)
