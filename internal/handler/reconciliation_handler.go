package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"parakh/internal/domain"
	"parakh/internal/export"
	"parakh/internal/service"
)

// ReconciliationHandler handles reconciliation endpoints.
type ReconciliationHandler struct {
	svc service.ReconciliationService
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(svc service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{svc: svc}
}

// Create handles POST /reconciliations. It expects a multipart form with
// po_file and invoice_file parts and returns the persisted run.
func (h *ReconciliationHandler) Create(c *gin.Context) {
	po, err := readUpload(c, "po_file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "po_file is required")
		return
	}
	inv, err := readUpload(c, "invoice_file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "invoice_file is required")
		return
	}

	rec, err := h.svc.Reconcile(c.Request.Context(), &service.ReconcileInput{
		PO:      *po,
		Invoice: *inv,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, rec)
}

// GetByID handles GET /reconciliations/:id.
func (h *ReconciliationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid reconciliation id")
		return
	}
	rec, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// List handles GET /reconciliations with offset/limit pagination.
func (h *ReconciliationHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	records, total, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, records, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /reconciliations/:id/export?format=csv|xlsx.
func (h *ReconciliationHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid reconciliation id")
		return
	}
	rec, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv":
		var buf bytes.Buffer
		buf.Write(export.BOM)
		if err := export.NewCSVWriter(&buf).WriteReport(rec); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reconciliation-%s.csv", rec.ID))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	case "xlsx":
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, rec); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reconciliation-%s.xlsx", rec.ID))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}

// SourceURL handles GET /reconciliations/:id/source/:kind, returning a
// presigned URL for an archived source document.
func (h *ReconciliationHandler) SourceURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid reconciliation id")
		return
	}
	kind := domain.DocumentKind(c.Param("kind"))
	if kind != domain.DocumentKindPurchaseOrder && kind != domain.DocumentKindInvoice {
		RespondError(c, http.StatusBadRequest, "INVALID_KIND", "kind must be purchase_order or invoice")
		return
	}
	url, err := h.svc.SourceURL(c.Request.Context(), id, kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// readUpload reads one multipart file part into an UploadedDocument.
func readUpload(c *gin.Context, field string) (*service.UploadedDocument, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &service.UploadedDocument{
		FileName:    header.Filename,
		ContentType: uploadContentType(header),
		Size:        header.Size,
		Bytes:       data,
	}, nil
}

// uploadContentType prefers the declared part content type, falling back to
// the file extension.
func uploadContentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return domain.AllowedFileTypes[ft]
	}
	return header.Header.Get("Content-Type")
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
