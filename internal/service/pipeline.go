// Package service runs the batch: interview workbooks in, coded report out.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"clinic-etl/internal/classifier"
	"clinic-etl/internal/extractor"
	"clinic-etl/internal/models"
	"clinic-etl/internal/notify"
	"clinic-etl/internal/repository"
	"clinic-etl/internal/store"
	"clinic-etl/internal/uploader"
	"clinic-etl/internal/workbook"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoInput is returned when no workbook could be read.
var ErrNoInput = errors.New("no input workbooks")

// RecordCache caches the records extracted from a workbook by content digest.
type RecordCache interface {
	Get(ctx context.Context, digest string) ([]models.PatientRecord, error)
	Set(ctx context.Context, digest string, records []models.PatientRecord) error
}

// ReportSink persists the coded rows of a batch.
type ReportSink interface {
	SaveBatch(ctx context.Context, batchID string, entries []repository.ReportEntry) error
	CountBatch(ctx context.Context, batchID string) (int, error)
}

// BatchNotifier announces finished batches.
type BatchNotifier interface {
	BatchCompleted(ev notify.BatchCompleted) error
}

// ReportUploader ships the report workbook elsewhere.
type ReportUploader interface {
	Upload(ctx context.Context, path, batchID string) (*uploader.Result, error)
}

// Pipeline is the batch ETL.
type Pipeline interface {
	// Extract reads every workbook and returns the patient records,
	// numbered from 0 across the batch.
	Extract(ctx context.Context, files []string) ([]models.PatientRecord, error)
	// Classify codes each record into a report row.
	Classify(records []models.PatientRecord) []models.ReportRow
	// Run extracts, stores the records file, classifies, writes the report
	// and feeds the optional sinks.
	Run(ctx context.Context, req RunRequest) (*RunResponse, error)
}

// RunRequest describes one batch.
type RunRequest struct {
	Files       []string
	RecordsPath string // optional; skipped when empty
	OutputPath  string
}

// RunResponse summarizes a finished batch.
type RunResponse struct {
	BatchID     string
	SourceFiles []string
	Patients    int
	OutputPath  string
	// PersistedRows is the row count the sink reports for the batch.
	PersistedRows int
	// Warnings lists the sink failures that did not stop the batch.
	Warnings []string
}

// Option configures optional pipeline stages.
type Option func(*pipeline)

// WithCache enables the extraction cache.
func WithCache(c RecordCache) Option {
	return func(p *pipeline) { p.cache = c }
}

// WithSink enables the database sink.
func WithSink(s ReportSink) Option {
	return func(p *pipeline) { p.sink = s }
}

// WithNotifier enables batch notifications.
func WithNotifier(n BatchNotifier) Option {
	return func(p *pipeline) { p.notifier = n }
}

// WithUploader enables the report upload.
func WithUploader(u ReportUploader) Option {
	return func(p *pipeline) { p.uploader = u }
}

type pipeline struct {
	extractor  *extractor.Extractor
	classifier *classifier.Classifier
	cache      RecordCache
	sink       ReportSink
	notifier   BatchNotifier
	uploader   ReportUploader
	newBatchID func() string
	logger     *zap.Logger
}

// NewPipeline creates the pipeline.
func NewPipeline(ex *extractor.Extractor, cl *classifier.Classifier, logger *zap.Logger, opts ...Option) Pipeline {
	p := &pipeline{
		extractor:  ex,
		classifier: cl,
		newBatchID: func() string { return uuid.New().String() },
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Extract(ctx context.Context, files []string) ([]models.PatientRecord, error) {
	var records []models.PatientRecord
	read := 0
	for _, file := range files {
		recs, err := p.extractFile(ctx, file)
		if err != nil {
			p.logger.Error("Skipping workbook", zap.String("file", file), zap.Error(err))
			continue
		}
		read++
		for _, rec := range recs {
			rec.ID = len(records)
			records = append(records, rec)
		}
	}
	if read == 0 {
		return nil, ErrNoInput
	}

	p.logger.Info("Extraction finished",
		zap.Int("workbooks", read),
		zap.Int("patients", len(records)),
	)
	return records, nil
}

func (p *pipeline) extractFile(ctx context.Context, file string) ([]models.PatientRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	digest := store.Digest(data)
	if p.cache != nil {
		cached, err := p.cache.Get(ctx, digest)
		switch {
		case err == nil:
			p.logger.Debug("Extraction cache hit", zap.String("file", file), zap.String("digest", digest))
			consultDate := extractor.ConsultDateFromFilename(file)
			for i := range cached {
				cached[i].SourceFile = file
				cached[i].ConsultDate = consultDate
			}
			return cached, nil
		case !errors.Is(err, store.ErrCacheMiss):
			p.logger.Warn("Extraction cache unavailable", zap.String("file", file), zap.Error(err))
		}
	}

	blocks, err := workbook.ReadBlocksFrom(bytes.NewReader(data), file)
	if err != nil {
		return nil, err
	}
	records := make([]models.PatientRecord, 0, len(blocks))
	for i, block := range blocks {
		records = append(records, p.extractor.Extract(i, block))
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, digest, records); err != nil {
			p.logger.Warn("Failed to cache extraction", zap.String("file", file), zap.Error(err))
		}
	}
	return records, nil
}

func (p *pipeline) Classify(records []models.PatientRecord) []models.ReportRow {
	rows := make([]models.ReportRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, p.classifier.Classify(rec))
	}
	return rows
}

func (p *pipeline) Run(ctx context.Context, req RunRequest) (*RunResponse, error) {
	if req.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	batchID := p.newBatchID()
	logger := p.logger.With(zap.String("batch_id", batchID))

	records, err := p.Extract(ctx, req.Files)
	if err != nil {
		return nil, err
	}
	if req.RecordsPath != "" {
		if err := store.WriteRecords(req.RecordsPath, records); err != nil {
			return nil, err
		}
		logger.Info("Records file written", zap.String("path", req.RecordsPath))
	}

	rows := p.Classify(records)
	if _, err := workbook.WriteReport(req.OutputPath, rows); err != nil {
		return nil, err
	}
	logger.Info("Report written",
		zap.String("path", req.OutputPath),
		zap.Int("rows", len(rows)),
	)

	resp := &RunResponse{
		BatchID:     batchID,
		SourceFiles: sourceFiles(records),
		Patients:    len(rows),
		OutputPath:  req.OutputPath,
	}
	warn := func(stage string, err error) {
		logger.Error("Batch stage failed", zap.String("stage", stage), zap.Error(err))
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", stage, err))
	}

	if p.sink != nil {
		entries := make([]repository.ReportEntry, len(rows))
		for i := range rows {
			entries[i] = repository.ReportEntry{
				PatientID:   records[i].ID,
				ConsultDate: records[i].ConsultDate,
				Row:         rows[i],
			}
		}
		if err := p.sink.SaveBatch(ctx, batchID, entries); err != nil {
			warn("database", err)
		} else if n, err := p.sink.CountBatch(ctx, batchID); err != nil {
			warn("database", err)
		} else {
			resp.PersistedRows = n
			logger.Info("Batch persisted", zap.Int("rows", n))
		}
	}
	if p.uploader != nil {
		if _, err := p.uploader.Upload(ctx, req.OutputPath, batchID); err != nil {
			warn("upload", err)
		}
	}
	if p.notifier != nil {
		err := p.notifier.BatchCompleted(notify.BatchCompleted{
			BatchID:     batchID,
			SourceFiles: resp.SourceFiles,
			Patients:    resp.Patients,
			Output:      req.OutputPath,
		})
		if err != nil {
			warn("notify", err)
		}
	}

	return resp, nil
}

// sourceFiles lists the distinct source files in record order.
func sourceFiles(records []models.PatientRecord) []string {
	seen := make(map[string]bool)
	var files []string
	for _, rec := range records {
		if rec.SourceFile != "" && !seen[rec.SourceFile] {
			seen[rec.SourceFile] = true
			files = append(files, rec.SourceFile)
		}
	}
	return files
}

// FindWorkbooks expands pattern into a sorted list of workbooks, leaving
// out Excel lock files ("~$...") and any path in exclude.
func FindWorkbooks(pattern string, exclude ...string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if e == "" {
			continue
		}
		if abs, err := filepath.Abs(e); err == nil {
			skip[abs] = true
		}
	}

	var files []string
	for _, m := range matches {
		if strings.HasPrefix(filepath.Base(m), "~$") {
			continue
		}
		if abs, err := filepath.Abs(m); err == nil && skip[abs] {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	return files, nil
}
