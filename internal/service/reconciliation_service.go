package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"parakh/internal/config"
	"parakh/internal/domain"
	"parakh/internal/port"
	"parakh/internal/recon"
)

// UploadedDocument is one side of a reconciliation as received from the caller.
type UploadedDocument struct {
	FileName    string
	ContentType string
	Size        int64
	Bytes       []byte
}

// ReconcileInput is the DTO for one reconciliation run.
type ReconcileInput struct {
	PO      UploadedDocument
	Invoice UploadedDocument
}

// ReconciliationService defines the reconciliation workflow contract.
type ReconciliationService interface {
	Reconcile(ctx context.Context, input *ReconcileInput) (*domain.ReconciliationRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.ReconciliationRecord, int, error)
	SourceURL(ctx context.Context, id uuid.UUID, kind domain.DocumentKind) (string, error)
}

type reconciliationService struct {
	extractor port.DocumentExtractor
	engine    *recon.Engine
	repo      port.ReconciliationRepository
	storage   port.ObjectStorage
	s3cfg     *config.S3Config
}

// NewReconciliationService creates a new ReconciliationService implementation.
// storage may be nil; source documents are then not archived.
func NewReconciliationService(
	extractor port.DocumentExtractor,
	engine *recon.Engine,
	repo port.ReconciliationRepository,
	storage port.ObjectStorage,
	s3cfg *config.S3Config,
) ReconciliationService {
	return &reconciliationService{
		extractor: extractor,
		engine:    engine,
		repo:      repo,
		storage:   storage,
		s3cfg:     s3cfg,
	}
}

// Reconcile runs the full pipeline: validate and archive the uploads, extract
// both documents concurrently, reconcile the field sets, persist the audit
// record. Extraction failure of either document is terminal; the registry
// lookup inside the engine is not.
func (s *reconciliationService) Reconcile(ctx context.Context, input *ReconcileInput) (*domain.ReconciliationRecord, error) {
	if err := s.validateUpload(&input.PO); err != nil {
		return nil, err
	}
	if err := s.validateUpload(&input.Invoice); err != nil {
		return nil, err
	}

	runID := uuid.New()
	start := time.Now()

	// The two extractions have no data dependency on each other.
	var poFields, invFields domain.FieldSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		poFields, err = s.extractor.Extract(gctx, port.ExtractInput{
			FileBytes:   input.PO.Bytes,
			FileName:    input.PO.FileName,
			ContentType: input.PO.ContentType,
			Kind:        domain.DocumentKindPurchaseOrder,
		})
		return err
	})
	g.Go(func() error {
		var err error
		invFields, err = s.extractor.Extract(gctx, port.ExtractInput{
			FileBytes:   input.Invoice.Bytes,
			FileName:    input.Invoice.FileName,
			ContentType: input.Invoice.ContentType,
			Kind:        domain.DocumentKindInvoice,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reconciliation %s: %w", runID, err)
	}

	result := s.engine.Reconcile(ctx, poFields, invFields)

	fieldsJSON, err := json.Marshal(result.Fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling field comparisons: %w", err)
	}
	var registryJSON json.RawMessage
	if result.Registry != nil {
		registryJSON, err = json.Marshal(result.Registry)
		if err != nil {
			return nil, fmt.Errorf("marshaling registry record: %w", err)
		}
	}

	rec := &domain.ReconciliationRecord{
		ID:               runID,
		POFileName:       input.PO.FileName,
		InvoiceFileName:  input.Invoice.FileName,
		POObjectKey:      s.archive(ctx, runID, domain.DocumentKindPurchaseOrder, &input.PO),
		InvoiceObjectKey: s.archive(ctx, runID, domain.DocumentKindInvoice, &input.Invoice),
		OverallStatus:    result.Overall,
		Fields:           fieldsJSON,
		Registry:         registryJSON,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting reconciliation: %w", err)
	}

	log.Printf("reconService: reconciliation %s done: overall=%s, fields=%d, took=%s",
		runID, result.Overall, len(result.Fields), time.Since(start))
	return rec, nil
}

func (s *reconciliationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reconciliationService) List(ctx context.Context, offset, limit int) ([]domain.ReconciliationRecord, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// SourceURL returns a presigned URL for one archived source document.
func (s *reconciliationService) SourceURL(ctx context.Context, id uuid.UUID, kind domain.DocumentKind) (string, error) {
	if s.storage == nil {
		return "", domain.ErrNotFound
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	key := rec.POObjectKey
	if kind == domain.DocumentKindInvoice {
		key = rec.InvoiceObjectKey
	}
	if key == "" {
		return "", domain.ErrNotFound
	}
	return s.storage.GetPresignedURL(ctx, s.s3cfg.Bucket, key, s.s3cfg.PresignExpiry)
}

// validateUpload enforces the allowed content types and size limit.
func (s *reconciliationService) validateUpload(doc *UploadedDocument) error {
	if _, ok := domain.AllowedContentTypes[doc.ContentType]; !ok {
		return domain.ErrUnsupportedFileType
	}
	if s.s3cfg != nil && doc.Size > s.s3cfg.MaxFileSizeMB*1024*1024 {
		return domain.ErrFileTooLarge
	}
	return nil
}

// archive stores one source document in object storage and returns its key.
// Archiving is best-effort: a storage failure must not fail a run that has
// already been judged.
func (s *reconciliationService) archive(ctx context.Context, runID uuid.UUID, kind domain.DocumentKind, doc *UploadedDocument) string {
	if s.storage == nil {
		return ""
	}
	name := strings.ReplaceAll(path.Base(doc.FileName), " ", "_")
	key := fmt.Sprintf("reconciliations/%s/%s/%s", runID, kind, name)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Bytes),
		ContentType: doc.ContentType,
		Size:        doc.Size,
	})
	if err != nil {
		log.Printf("reconService: archiving %s for %s failed: %v", kind, runID, err)
		return ""
	}
	return key
}
