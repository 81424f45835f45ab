package config

const (
	// MaxUploadBytes caps uploaded document size at 5 MiB. The similarity
	// scan is quadratic in document length, so this also bounds worst-case
	// CPU per request.
	MaxUploadBytes = 5 << 20

	// MaxFilenameLength is the maximum length for uploaded file names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFilenameLength = 255

	// MaxReasonLength is the maximum length for credit request reasons and
	// admin responses.
	MaxReasonLength = 500
)
