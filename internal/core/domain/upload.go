package domain

// UploadStatus is the reconciled outcome of storing a document.
type UploadStatus string

// Upload outcomes.
const (
	// UploadSucceeded means the transfer completed without error.
	UploadSucceeded UploadStatus = "succeeded"

	// UploadVerified means the transfer reported an error but the
	// document is present in a fresh listing.
	UploadVerified UploadStatus = "verified"

	// UploadFailed means the transfer failed and the document is absent.
	UploadFailed UploadStatus = "failed"
)

// UploadResult describes an upload attempt.
type UploadResult struct {
	// ID is the archive identifier the document was stored under.
	ID DocumentID

	// Status is the reconciled outcome.
	Status UploadStatus

	// TransferErr is the error reported by the transfer, if any.
	// Set for both UploadVerified and UploadFailed.
	TransferErr error
}

// Stored reports whether the document is present in the archive.
func (r UploadResult) Stored() bool {
	return r.Status == UploadSucceeded || r.Status == UploadVerified
}
