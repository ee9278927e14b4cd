// internal/storage/exporter.go
package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// SnapshotExporter archives forecast runs to an S3-compatible bucket so
// historical projections can be compared against what actually happened.
type SnapshotExporter struct {
	client *minio.Client
	bucket string
}

func NewSnapshotExporter(cfg config.StorageConfig) (*SnapshotExporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("storage credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage client init failed: %w", err)
	}

	return &SnapshotExporter{client: client, bucket: cfg.Bucket}, nil
}

// UploadSummary stores the full forecast result as JSON under
// snapshots/<date>/summary.json.
func (e *SnapshotExporter) UploadSummary(ctx context.Context, day time.Time, result domain.ForecastResult) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/%s/summary.json", day.Format("2006-01-02"))
	return e.upload(ctx, key, payload, "application/json")
}

// UploadSuggestionsCSV stores the reorder suggestions as CSV under
// snapshots/<date>/suggestions.csv, one row per item.
func (e *SnapshotExporter) UploadSuggestionsCSV(ctx context.Context, day time.Time, suggestions []domain.StockSuggestion) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"stock_id", "stock_name", "current_quantity", "average_daily_usage", "reorder_point", "order_quantity", "estimated_cost", "supplier"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("encode csv header: %w", err)
	}
	for _, s := range suggestions {
		record := []string{
			s.StockID,
			s.StockName,
			strconv.FormatFloat(s.CurrentQuantity, 'f', -1, 64),
			strconv.FormatFloat(s.AverageDailyUsage, 'f', -1, 64),
			strconv.FormatFloat(s.SuggestedReorderPoint, 'f', -1, 64),
			strconv.Itoa(s.SuggestedOrderQuantity),
			strconv.FormatFloat(s.EstimatedCost, 'f', 2, 64),
			s.Supplier,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("encode csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	key := fmt.Sprintf("snapshots/%s/suggestions.csv", day.Format("2006-01-02"))
	return e.upload(ctx, key, buf.Bytes(), "text/csv")
}

func (e *SnapshotExporter) upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload %s failed: %w", key, err)
	}
	return nil
}
