package common

const (
	// Session cache keys. All three must be present for a restorable session.
	CacheKeyAccessToken  = "accessToken"
	CacheKeyRefreshToken = "refreshToken"
	CacheKeyUsername     = "username"

	// Multipart form field carrying the image on the analyze call.
	ImageFormField = "image"

	// Upper bound on submitted image size.
	MaxImageBytes = 10 << 20
)
