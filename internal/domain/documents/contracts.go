package documents

import (
	"context"
	"mime/multipart"
)

// DocumentUploadService defines methods for ingesting documents.
type DocumentUploadService interface {
	// Upload stores the files from the form, runs the virus scan wrapper on
	// each one and persists metadata. Infected files are rejected and never
	// reach storage.
	Upload(ctx context.Context, form *multipart.Form, farmID, userID string) ([]*DocumentMeta, error)
}

// DocumentMetadataService defines methods for reading and deleting document metadata.
type DocumentMetadataService interface {
	// List retrieves document metadata considering a query filter when set.
	List(ctx context.Context, query *DocumentMetaQuery) ([]*DocumentMeta, error)

	// GetByID retrieves document metadata by ID.
	GetByID(ctx context.Context, documentID string) (*DocumentMeta, error)

	// DeleteByID deletes a document and associated metadata by ID.
	DeleteByID(ctx context.Context, documentID string) error
}

// DocumentDownloadService defines methods for downloading document content.
type DocumentDownloadService interface {
	// DownloadByID retrieves a document's content by ID.
	DownloadByID(ctx context.Context, documentID string) ([]byte, error)
}

// DocumentRepository defines the persistence interface for document metadata
type DocumentRepository interface {
	// Create adds new document metadata to the database
	Create(ctx context.Context, doc *DocumentMeta) error
	// List lists document metadata with optional filter
	List(ctx context.Context, query *DocumentMetaQuery) ([]*DocumentMeta, error)
	// GetByID retrieves document metadata by ID
	GetByID(ctx context.Context, documentID string) (*DocumentMeta, error)
	// UpdateByID updates document metadata by ID
	UpdateByID(ctx context.Context, doc *DocumentMeta) error
	// DeleteByID deletes document metadata by ID
	DeleteByID(ctx context.Context, documentID string) error
}

// StorageConnector is an interface for interacting with the document blob store
type StorageConnector interface {
	// Upload uploads files to blob storage and returns metadata for each
	// uploaded byte stream. Scan and extraction statuses are left at their
	// zero defaults for the caller to fill in.
	Upload(ctx context.Context, form *multipart.Form, farmID, userID string) ([]*DocumentMeta, error)

	// Download retrieves a document's content by storage path.
	Download(ctx context.Context, storagePath string) ([]byte, error)

	// Delete removes a document from blob storage by storage path.
	Delete(ctx context.Context, storagePath string) error
}
