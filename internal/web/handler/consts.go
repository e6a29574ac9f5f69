package handler

const (
	// APIBasePath is the prefix for all versioned API routes.
	APIBasePath = "/api/v1"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
