package catalog

import "mime/multipart"

// Request DTOs

// IngestRequest carries the multipart stream of one upload request. The
// stream must contain a "name" text field plus "icon" and "model" file
// fields; the service consumes it exactly once.
type IngestRequest struct {
	Parts *multipart.Reader
}
