package models

import "textscan/internal/matching"

// DocumentSummary is the slice of a Document reported back after a scan.
type DocumentSummary struct {
	ID       int64            `json:"id"`
	Filename string           `json:"filename"`
	Status   ProcessingStatus `json:"processing_status"`
}

// ScanReport is the outward result of one ingestion: the stored document,
// the ranked similarity evidence and the post-decrement balance. It is
// assembled per request and never persisted.
type ScanReport struct {
	Document         DocumentSummary   `json:"document"`
	SimilarDocuments []matching.Result `json:"similar_documents"`
	RemainingCredits int               `json:"remaining_credits"`
}
