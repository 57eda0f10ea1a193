package ports

import "errors"

// ErrDocumentNotFound is returned by a ContentSource for an unknown document.
var ErrDocumentNotFound = errors.New("content document not found")

// ContentSource provides the raw documents a campaign is compiled from.
// Document names carry their extension (".yaml", ".yml" or ".json"), which
// selects the decoder.
type ContentSource interface {
	// ReadDocument returns the raw bytes of a document.
	// Returns ErrDocumentNotFound (possibly wrapped) if it does not exist.
	ReadDocument(name string) ([]byte, error)

	// ListDocuments returns every available document name in lexical order.
	ListDocuments() ([]string, error)
}
