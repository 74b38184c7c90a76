package notifications

import (
	"context"
	"time"
)

// RunTypeNewPublication is the audit type for new-publication broadcasts.
const RunTypeNewPublication = "nueva_publicacion"

// maxErrorSample caps the per-run error detail kept in the audit row. The
// full counts are always recorded; only the sample is bounded.
const maxErrorSample = 10

// RunDetails is the JSON detail column of an audit row.
type RunDetails struct {
	Errors []string `json:"errores,omitempty"`
}

// Run is one completed dispatch recorded for audit.
type Run struct {
	ID              int64
	PublicationID   int64
	Type            string
	TotalRecipients int
	TotalSucceeded  int
	TotalFailed     int
	Details         RunDetails
	SentAt          time.Time
}

// Repository defines the interface for the notification audit log.
type Repository interface {
	// CreateRun inserts an audit row and fills ID and SentAt.
	CreateRun(ctx context.Context, run *Run) error
}
