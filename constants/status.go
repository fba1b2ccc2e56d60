package constants

// JobStatus is the canonical status for rows in extract_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusRunning JobStatus = "RUNNING"  // in progress
	JobStatusOCROK   JobStatus = "OCR_OK"   // stage 1 completed (text acquired)
	JobStatusParseOK JobStatus = "PARSE_OK" // stage 2 completed (records extracted)
	JobStatusFailed  JobStatus = "FAILED"   // terminal failure
)
