package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"qrcut/internal/metrics"
	"qrcut/internal/model"
	"qrcut/internal/qrmask"
	"qrcut/internal/repository"
	"qrcut/internal/storage"
)

var (
	ErrEmptyBatch = errors.New("at least one image must be provided")
	ErrEmptyFile  = errors.New("file is empty")
)

const (
	// RecentLogsLimit caps the rows returned by RecentLogs.
	RecentLogsLimit = 50

	uploadsPrefix   = "uploads"
	processedPrefix = "processed"
	archiveStem     = "qr-cut"
	defaultStem     = "image"
)

// Upload is one file received in a processing request.
type Upload struct {
	Filename string
	Data     []byte
}

// BatchResult is what a processing request returns to the client.
type BatchResult struct {
	Body         []byte
	ContentType  string
	DownloadName string
	Metadata     model.ProcessResponse
}

// ImageProcessor masks the QR codes found in one encoded image.
// *qrmask.Processor satisfies it.
type ImageProcessor interface {
	Process(data []byte, filename string, opts qrmask.Options) ([]byte, int, error)
}

// ProcessingService defines the use cases behind the HTTP API.
type ProcessingService interface {
	// Process masks every upload with the same options. The batch is all-or-nothing:
	// when any file fails nothing is stored and nothing is logged.
	Process(ctx context.Context, uploads []Upload, opts qrmask.Options) (*BatchResult, error)

	// RecentLogs returns the latest processing log rows, newest first.
	RecentLogs(ctx context.Context) ([]model.ProcessLog, error)
}

type processingService struct {
	proc    ImageProcessor
	store   storage.Storage
	repo    repository.ProcessLogRepository
	log     zerolog.Logger
	metrics *metrics.Processing
	tracer  trace.Tracer

	now   func() time.Time
	token func() string
}

// NewProcessingService constructs a new ProcessingService. m may be nil.
func NewProcessingService(proc ImageProcessor, store storage.Storage, repo repository.ProcessLogRepository, log zerolog.Logger, m *metrics.Processing) ProcessingService {
	return &processingService{
		proc:    proc,
		store:   store,
		repo:    repo,
		log:     log.With().Str("component", "processing").Logger(),
		metrics: m,
		tracer:  otel.Tracer("qrcut/internal/service"),
		now:     time.Now,
		token:   func() string { return uuid.NewString()[:8] },
	}
}

// processedFile is a file that went through the processor but has not been
// stored or logged yet.
type processedFile struct {
	source        string
	original      []byte
	originalName  string
	processed     []byte
	processedName string
	qrCount       int
}

func (s *processingService) Process(ctx context.Context, uploads []Upload, opts qrmask.Options) (res *BatchResult, err error) {
	ctx, span := s.tracer.Start(ctx, "ProcessingService.Process", trace.WithAttributes(
		attribute.Int("qrcut.files", len(uploads)),
		attribute.String("qrcut.output_format", string(opts.Format())),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(uploads) == 0 {
		s.metrics.ObserveBatch(metrics.OutcomeRejected)
		return nil, ErrEmptyBatch
	}
	for _, u := range uploads {
		if len(u.Data) == 0 {
			s.metrics.ObserveBatch(metrics.OutcomeRejected)
			return nil, fmt.Errorf("%w: %q", ErrEmptyFile, u.Filename)
		}
	}

	files := make([]processedFile, 0, len(uploads))
	for _, u := range uploads {
		f, err := s.processOne(ctx, u, opts)
		if err != nil {
			s.metrics.ObserveBatch(metrics.OutcomeFailed)
			s.log.Warn().Err(err).Str("event", "batch_failed").Str("filename", u.Filename).Msg("processing failed")
			return nil, err
		}
		files = append(files, f)
	}

	res, err = s.respond(files, opts)
	if err != nil {
		s.metrics.ObserveBatch(metrics.OutcomeFailed)
		return nil, err
	}

	if err := s.persist(ctx, files, opts); err != nil {
		s.metrics.ObserveBatch(metrics.OutcomeFailed)
		s.log.Error().Err(err).Str("event", "batch_failed").Msg("persisting batch failed")
		return nil, err
	}

	total := 0
	for _, f := range files {
		total += f.qrCount
	}
	s.metrics.ObserveBatch(metrics.OutcomeSuccess)
	s.log.Info().
		Str("event", "batch_processed").
		Int("files", len(files)).
		Int("qr_count", total).
		Str("download_name", res.DownloadName).
		Msg("batch processed")
	return res, nil
}

func (s *processingService) processOne(ctx context.Context, u Upload, opts qrmask.Options) (processedFile, error) {
	_, span := s.tracer.Start(ctx, "ProcessingService.processOne", trace.WithAttributes(
		attribute.String("qrcut.filename", u.Filename),
		attribute.Int("qrcut.bytes", len(u.Data)),
	))
	defer span.End()

	stem, ext := splitName(u.Filename)
	originalName := s.storageName(stem, ext)
	source := u.Filename
	if source == "" {
		source = originalName
	}

	start := time.Now()
	out, count, err := s.proc.Process(u.Data, source, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return processedFile{}, err
	}
	s.metrics.ObserveImage(string(opts.Format()), count, time.Since(start))
	span.SetAttributes(attribute.Int("qrcut.qr_count", count))

	return processedFile{
		source:        source,
		original:      u.Data,
		originalName:  originalName,
		processed:     out,
		processedName: s.storageName(stem, opts.Format().Extension()),
		qrCount:       count,
	}, nil
}

// persist stores both artifacts of every file, then appends all log rows in
// one transaction. Any failure removes the artifacts written so far.
func (s *processingService) persist(ctx context.Context, files []processedFile, opts qrmask.Options) error {
	var keys []string
	put := func(key string, data []byte, contentType string) error {
		_, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
			Size:        int64(len(data)),
			ContentType: contentType,
		})
		if err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
		keys = append(keys, key)
		return nil
	}

	entries := make([]model.ProcessLog, 0, len(files))
	for _, f := range files {
		if err := put(path.Join(uploadsPrefix, f.originalName), f.original, "application/octet-stream"); err != nil {
			s.rollback(keys)
			return err
		}
		if err := put(path.Join(processedPrefix, f.processedName), f.processed, opts.Format().ContentType()); err != nil {
			s.rollback(keys)
			return err
		}
		entries = append(entries, model.ProcessLog{
			OriginalFilename:  f.source,
			ProcessedFilename: f.processedName,
			QRCount:           f.qrCount,
			FillColor:         opts.FillColor(),
			FillShape:         string(opts.Shape()),
			Opacity:           opts.Opacity(),
			OutputFormat:      string(opts.Format()),
		})
	}

	if _, err := s.repo.Append(ctx, entries); err != nil {
		s.rollback(keys)
		return fmt.Errorf("db save failed: %w", err)
	}
	return nil
}

// rollback deletes artifacts of a failed batch. It uses a fresh context so a
// cancelled request still cleans up.
func (s *processingService) rollback(keys []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil {
			s.log.Error().Err(err).Str("event", "rollback_delete_failed").Str("key", k).Msg("rollback delete failed")
		}
	}
}

func (s *processingService) respond(files []processedFile, opts qrmask.Options) (*BatchResult, error) {
	meta := model.ProcessResponse{Images: make([]model.ProcessedImage, 0, len(files))}
	for _, f := range files {
		meta.Images = append(meta.Images, model.ProcessedImage{
			OriginalFilename:  f.source,
			ProcessedFilename: f.processedName,
			QRCount:           f.qrCount,
		})
	}

	if len(files) == 1 {
		return &BatchResult{
			Body:         files[0].processed,
			ContentType:  opts.Format().ContentType(),
			DownloadName: files[0].processedName,
			Metadata:     meta,
		}, nil
	}

	archive := s.storageName(archiveStem, "zip")
	body, err := buildArchive(files, s.now())
	if err != nil {
		return nil, fmt.Errorf("build archive: %w", err)
	}
	meta.Archive = &archive
	return &BatchResult{
		Body:         body,
		ContentType:  "application/zip",
		DownloadName: archive,
		Metadata:     meta,
	}, nil
}

// buildArchive stores every processed image uncompressed; PNG and JPEG data
// does not shrink further.
func buildArchive(files []processedFile, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     f.processedName,
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(f.processed); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *processingService) RecentLogs(ctx context.Context) ([]model.ProcessLog, error) {
	return s.repo.Recent(ctx, RecentLogsLimit)
}

// storageName returns "{UTC timestamp}_{token}_{stem}.{ext}", omitting the
// extension when ext is empty.
func (s *processingService) storageName(stem, ext string) string {
	name := fmt.Sprintf("%s_%s_%s", s.now().UTC().Format("20060102150405"), s.token(), stem)
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		name += "." + ext
	}
	return name
}

// splitName returns the base name without extension and the bare extension.
// Client paths are reduced to their last element. A leading dot does not start
// an extension.
func splitName(filename string) (stem, ext string) {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	ext = path.Ext(base)
	if ext == base {
		// dotfiles like ".bashrc" have no extension
		ext = ""
	}
	stem = strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = defaultStem
	}
	return stem, strings.TrimPrefix(ext, ".")
}
