//go:build integration
// +build integration

package persistence

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"subsidy_pilot_service/internal/domain/audit"
	"subsidy_pilot_service/internal/domain/changedetect"
	"subsidy_pilot_service/internal/domain/documents"
	"subsidy_pilot_service/internal/domain/extraction"
	"subsidy_pilot_service/internal/domain/farms"
	"subsidy_pilot_service/internal/domain/reviews"
	"subsidy_pilot_service/internal/domain/subsidies"
	"subsidy_pilot_service/internal/domain/training"
	"subsidy_pilot_service/internal/pkg/config"
	"subsidy_pilot_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestContentTypePDF  = "application/pdf"
	TestContentTypePNG  = "image/png"
	TestContentTypeText = "text/plain"

	TestSourceCodeEU = "eu-cap"
	TestCountryDE    = "DE"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB              *gorm.DB
	DocumentRepo    documents.DocumentRepository
	ExtractionRepo  extraction.ExtractionRepository
	ReviewRepo      reviews.ReviewRepository
	FarmRepo        farms.FarmRepository
	SubsidyRepo     subsidies.SubsidyRepository
	ApplicationRepo subsidies.ApplicationRepository
	TrainingRepo    training.TrainingJobRepository
	DeploymentRepo  training.DeploymentRepository
	AuditRepo       audit.EventRepository
	SnapshotRepo    changedetect.SnapshotRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {
			// SQLite in-memory cleanup is automatic
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	documentRepo, err := NewGormDocumentRepository(db, logger)
	require.NoError(t, err)
	extractionRepo, err := NewGormExtractionRepository(db, logger)
	require.NoError(t, err)
	reviewRepo, err := NewGormReviewRepository(db, logger)
	require.NoError(t, err)
	farmRepo, err := NewGormFarmRepository(db, logger)
	require.NoError(t, err)
	subsidyRepo, err := NewGormSubsidyRepository(db, logger)
	require.NoError(t, err)
	applicationRepo, err := NewGormApplicationRepository(db, logger)
	require.NoError(t, err)
	trainingRepo, err := NewGormTrainingJobRepository(db, logger)
	require.NoError(t, err)
	deploymentRepo, err := NewGormDeploymentRepository(db, logger)
	require.NoError(t, err)
	auditRepo, err := NewGormAuditEventRepository(db, logger)
	require.NoError(t, err)
	snapshotRepo, err := NewGormSnapshotRepository(db, logger)
	require.NoError(t, err)

	return &TestContext{
		DB:              db,
		DocumentRepo:    documentRepo,
		ExtractionRepo:  extractionRepo,
		ReviewRepo:      reviewRepo,
		FarmRepo:        farmRepo,
		SubsidyRepo:     subsidyRepo,
		ApplicationRepo: applicationRepo,
		TrainingRepo:    trainingRepo,
		DeploymentRepo:  deploymentRepo,
		AuditRepo:       auditRepo,
		SnapshotRepo:    snapshotRepo,
	}
}

// TestChecksum computes a hex checksum usable for document fixtures
func TestChecksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// CreateTestFarm creates a farm with default values
func CreateTestFarm(t *testing.T, ownerUserID string) *farms.Farm {
	t.Helper()

	return &farms.Farm{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        "Hofgut Sonnenfeld",
		Country:     TestCountryDE,
		Region:      "Bayern",
		Hectares:    42.5,
		LegalStatus: "GbR",
		CreatedAt:   time.Now(),
	}
}

// CreateTestDocument creates document metadata with default values
func CreateTestDocument(t *testing.T, farmID, userID, name string) *documents.DocumentMeta {
	t.Helper()

	if name == "" {
		name = "parcel-register.pdf"
	}

	return &documents.DocumentMeta{
		ID:               uuid.NewString(),
		FarmID:           farmID,
		UserID:           userID,
		Name:             name,
		Size:             2048,
		ContentType:      TestContentTypePDF,
		Checksum:         TestChecksum(name),
		ScanStatus:       documents.ScanStatusClean,
		ExtractionStatus: documents.ExtractionStatusNone,
		StoragePath:      farmID + "/" + name,
		DateTimeCreated:  time.Now(),
	}
}

// CreateTestSubsidy creates a subsidy with default values
func CreateTestSubsidy(t *testing.T, externalID string) *subsidies.Subsidy {
	t.Helper()

	deadline := time.Now().Add(90 * 24 * time.Hour)
	return &subsidies.Subsidy{
		ID:          uuid.NewString(),
		SourceCode:  TestSourceCodeEU,
		ExternalID:  externalID,
		Title:       "Eco-scheme direct payment",
		Agency:      "BLE",
		Country:     TestCountryDE,
		Deadline:    &deadline,
		MinFunding:  500,
		MaxFunding:  25000,
		MinHectares: 1,
		MaxHectares: 200,
		Eligibility: "Active farmers with registered parcels",
		ContentHash: TestChecksum(externalID),
		UpdatedAt:   time.Now(),
	}
}

// CreateTestExtractionJob creates an extraction job with default values
func CreateTestExtractionJob(t *testing.T, documentID string) *extraction.ExtractionJob {
	t.Helper()

	return &extraction.ExtractionJob{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Status:     extraction.StatusPending,
		Confidence: 0,
		StartedAt:  time.Now(),
	}
}
