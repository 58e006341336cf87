// Package mccdata reads merchant category code reference data from blob storage.
package mccdata

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"cashtrail/config"
	"cashtrail/internal/domain/entity"
	"cashtrail/internal/usecase"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
)

// Column layout of the reference CSV, header row included.
const (
	columnCode = iota
	columnEditedDescription
	columnCombinedDescription
	columnUSDADescription
	columnIRSDescription
	columnCount
)

// blobSource implements usecase.MCCSource by reading a CSV object from a
// gocloud.dev bucket. Any bucket scheme the binary links in works; the local
// deployment uses fileblob.
type blobSource struct {
	bucketURL string
	objectKey string
}

// NewBlobSource is the constructor for blobSource.
func NewBlobSource(cfg *config.Config) usecase.MCCSource {
	source := &blobSource{}
	if cfg.MCC != nil {
		source.bucketURL = cfg.MCC.BucketURL
		source.objectKey = cfg.MCC.ObjectKey
	}

	return source
}

// Read opens the bucket, streams the CSV object and returns every data row.
// The header row is skipped; a row with a non-numeric code is rejected.
func (s *blobSource) Read(ctx context.Context) ([]*entity.MerchantCategoryCode, error) {
	if s.bucketURL == "" || s.objectKey == "" {
		return nil, errors.New("merchant category code source is not configured")
	}

	bucket, err := blob.OpenBucket(ctx, s.bucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open merchant category code bucket")
	}
	defer bucket.Close()

	reader, err := bucket.NewReader(ctx, s.objectKey, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open merchant category code object %q", s.objectKey)
	}
	defer reader.Close()

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = columnCount

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse merchant category code csv")
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	codes := make([]*entity.MerchantCategoryCode, 0, len(rows)-1)
	for _, row := range rows[1:] {
		code, err := strconv.Atoi(strings.TrimSpace(row[columnCode]))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid merchant category code %q", row[columnCode])
		}

		codes = append(codes, &entity.MerchantCategoryCode{
			Code:                code,
			EditedDescription:   strings.TrimSpace(row[columnEditedDescription]),
			CombinedDescription: strings.TrimSpace(row[columnCombinedDescription]),
			USDADescription:     strings.TrimSpace(row[columnUSDADescription]),
			IRSDescription:      strings.TrimSpace(row[columnIRSDescription]),
		})
	}

	return codes, nil
}
