package connector

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/google/uuid"
)

// azureBlobConnector stores document content in an Azure Blob Storage container.
type azureBlobConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureBlobConnector creates a new connector backed by Azure Blob Storage.
// The container is created when it does not exist yet.
func NewAzureBlobConnector(ctx context.Context, settings *config.StorageConnectorSettings, logger logger.Logger) (documents.StorageConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage connector settings: %w", err)
	}

	client, err := azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	_, err = client.CreateContainer(ctx, settings.ContainerName, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container '%s': %w", settings.ContainerName, err)
	}

	return &azureBlobConnector{
		client:        client,
		containerName: settings.ContainerName,
		logger:        logger,
	}, nil
}

func (c *azureBlobConnector) Upload(ctx context.Context, form *multipart.Form, farmID, userID string) ([]*documents.DocumentMeta, error) {
	var uploaded []*documents.DocumentMeta

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return nil, fmt.Errorf("no files in form")
	}

	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			c.rollback(ctx, uploaded)
			return nil, fmt.Errorf("failed to open file '%s': %w", fileHeader.Filename, err)
		}

		content, err := io.ReadAll(file)
		closeErr := file.Close()
		if err != nil {
			c.rollback(ctx, uploaded)
			return nil, fmt.Errorf("failed to read file '%s': %w", fileHeader.Filename, err)
		}
		if closeErr != nil {
			c.rollback(ctx, uploaded)
			return nil, fmt.Errorf("failed to close file '%s': %w", fileHeader.Filename, closeErr)
		}

		checksum := sha256.Sum256(content)

		doc := &documents.DocumentMeta{
			ID:              uuid.New().String(),
			FarmID:          farmID,
			UserID:          userID,
			Name:            fileHeader.Filename,
			Size:            int64(len(content)),
			ContentType:     fileHeader.Header.Get("Content-Type"),
			Checksum:        hex.EncodeToString(checksum[:]),
			DateTimeCreated: time.Now(),
		}
		doc.StoragePath = fmt.Sprintf("%s/%s/%s", farmID, doc.ID, doc.Name)

		_, err = c.client.UploadStream(ctx, c.containerName, doc.StoragePath, bytes.NewReader(content), nil)
		if err != nil {
			c.rollback(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload blob '%s': %w", doc.StoragePath, err)
		}

		c.logger.Info("Uploaded blob ", doc.StoragePath)
		uploaded = append(uploaded, doc)
	}

	return uploaded, nil
}

// rollback removes already uploaded blobs after a mid-batch failure
func (c *azureBlobConnector) rollback(ctx context.Context, uploaded []*documents.DocumentMeta) {
	for _, doc := range uploaded {
		if err := c.Delete(ctx, doc.StoragePath); err != nil {
			c.logger.Warn("Failed to roll back blob ", doc.StoragePath)
		}
	}
}

func (c *azureBlobConnector) Download(ctx context.Context, storagePath string) ([]byte, error) {
	resp, err := c.client.DownloadStream(ctx, c.containerName, storagePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download blob '%s': %w", storagePath, err)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob '%s': %w", storagePath, err)
	}

	if err := resp.Body.Close(); err != nil {
		return nil, fmt.Errorf("failed to close blob stream '%s': %w", storagePath, err)
	}

	return content, nil
}

func (c *azureBlobConnector) Delete(ctx context.Context, storagePath string) error {
	_, err := c.client.DeleteBlob(ctx, c.containerName, storagePath, nil)
	if err != nil {
		return fmt.Errorf("failed to delete blob '%s': %w", storagePath, err)
	}

	c.logger.Info("Deleted blob ", storagePath)
	return nil
}
