package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recipex/internal/dbx"
	"github.com/dmitrijs2005/recipex/internal/logging"
	"github.com/dmitrijs2005/recipex/internal/server/report"
	"github.com/dmitrijs2005/recipex/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ExportLinkValidity is how long a presigned export link stays usable.
const ExportLinkValidity = 15 * time.Minute

// BlobStore keeps export artifacts.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Export is an uploaded workbook and a link to download it.
type Export struct {
	Key string
	URL string
}

// ExportService renders a user's measurements into a workbook and uploads it.
type ExportService struct {
	tx    dbx.Transactor
	repos repomanager.RepositoryManager
	blobs BlobStore
	log   logging.Logger
	now   func() time.Time
}

func NewExportService(tx dbx.Transactor, m repomanager.RepositoryManager, blobs BlobStore, log logging.Logger) *ExportService {
	return &ExportService{tx: tx, repos: m, blobs: blobs, log: log, now: time.Now}
}

// ExportKey returns a fresh object key under the user's export prefix.
func ExportKey(userID int64, d time.Time) string {
	return fmt.Sprintf("exports/%d/%d/%d/%d/%v.xlsx", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

// ExportMeasurements uploads every measurement of userID as an XLSX sheet and
// returns its key with a presigned GET URL.
func (s *ExportService) ExportMeasurements(ctx context.Context, userID int64) (*Export, error) {
	db := s.tx.Conn()
	if _, err := s.repos.Users(db).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	ms, err := s.repos.Measurements(db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := report.Measurements(ms)
	if err != nil {
		return nil, fmt.Errorf("error rendering export: %w", err)
	}

	key := ExportKey(userID, s.now())
	if err := s.blobs.Put(ctx, key, report.ContentType, data); err != nil {
		return nil, err
	}
	url, err := s.blobs.PresignGet(ctx, key, ExportLinkValidity)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "measurements exported", "user_id", userID, "rows", len(ms), "key", key)
	return &Export{Key: key, URL: url}, nil
}
