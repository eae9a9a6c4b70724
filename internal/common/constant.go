package common

// RequestIDHeaderName carries the per-request correlation id on HTTP
// requests and responses.
const RequestIDHeaderName = "X-Request-ID"

// ProfilePictureField is the multipart form field holding the picture file.
const ProfilePictureField = "profile_picture"
