package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AzureCloudProvider represents Microsoft Azure cloud provider
const AzureCloudProvider = "azure"

// AwsCloudProvider represents Amazon Web Services cloud provider
const AwsCloudProvider = "aws"

// GcpCloudProvider represents Google Cloud Platform cloud provider
const GcpCloudProvider = "gcp"

// StorageConnectorSettings holds settings for the document blob store
type StorageConnectorSettings struct {
	CloudProvider    string `mapstructure:"cloud_provider" validate:"required,oneof=azure aws gcp"`
	ConnectionString string `mapstructure:"connection_string" validate:"required"`
	ContainerName    string `mapstructure:"container_name" validate:"required"`
}

// Validate checks that all fields in StorageConnectorSettings are valid
func (s *StorageConnectorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageConnectorSettings: %w", err)
	}
	return nil
}
