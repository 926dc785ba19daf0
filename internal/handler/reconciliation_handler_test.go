package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"parakh/internal/domain"
	"parakh/internal/handler"
	"parakh/internal/service"
	"parakh/mocks"
)

func newTestRouter(svc service.ReconciliationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReconciliationHandler(svc)
	r.POST("/reconciliations", h.Create)
	r.GET("/reconciliations", h.List)
	r.GET("/reconciliations/:id", h.GetByID)
	r.GET("/reconciliations/:id/export", h.Export)
	r.GET("/reconciliations/:id/source/:kind", h.SourceURL)
	return r
}

func multipartBody(t *testing.T, fields map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, data := range fields {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+field+`.pdf"`)
		hdr.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("Reconcile", mock.Anything, mock.MatchedBy(func(in *service.ReconcileInput) bool {
			return in.PO.FileName == "po_file.pdf" &&
				in.Invoice.FileName == "invoice_file.pdf" &&
				in.PO.ContentType == "application/pdf"
		})).Return(&domain.ReconciliationRecord{
			ID:            uuid.New(),
			OverallStatus: domain.StatusMatch,
		}, nil)

		body, contentType := multipartBody(t, map[string][]byte{
			"po_file":      []byte("%PDF po"),
			"invoice_file": []byte("%PDF invoice"),
		})
		req := httptest.NewRequest(http.MethodPost, "/reconciliations", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp handler.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		svc.AssertExpectations(t)
	})

	t.Run("missing_invoice_file", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)

		body, contentType := multipartBody(t, map[string][]byte{
			"po_file": []byte("%PDF po"),
		})
		req := httptest.NewRequest(http.MethodPost, "/reconciliations", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
	})

	t.Run("extraction_failure_maps_to_bad_gateway", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("Reconcile", mock.Anything, mock.Anything).
			Return(nil, domain.ErrExtractionFailed)

		body, contentType := multipartBody(t, map[string][]byte{
			"po_file":      []byte("%PDF po"),
			"invoice_file": []byte("junk"),
		})
		req := httptest.NewRequest(http.MethodPost, "/reconciliations", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp handler.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "EXTRACTION_FAILED", resp.Error.Code)
	})
}

func TestGetByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		id := uuid.New()
		svc := new(mocks.MockReconciliationService)
		svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations/"+id.String(), nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid_id", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations/not-a-uuid", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestList(t *testing.T) {
	t.Run("clamps_pagination", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("List", mock.Anything, 0, 20).
			Return([]domain.ReconciliationRecord{}, 0, nil)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations?offset=-5&limit=5000", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("returns_meta", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("List", mock.Anything, 10, 5).
			Return([]domain.ReconciliationRecord{{ID: uuid.New()}}, 42, nil)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations?offset=10&limit=5", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		var resp handler.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, 42, resp.Meta.Total)
		assert.Equal(t, 10, resp.Meta.Offset)
		assert.Equal(t, 5, resp.Meta.Limit)
	})
}

func TestExport(t *testing.T) {
	rec := &domain.ReconciliationRecord{
		ID:            uuid.New(),
		OverallStatus: domain.StatusMatch,
		Fields:        json.RawMessage(`{}`),
	}

	t.Run("csv", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations/"+rec.ID.String()+"/export?format=csv", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
		assert.Contains(t, w.Body.String(), "Overall Status")
	})

	t.Run("unknown_format", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("GetByID", mock.Anything, rec.ID).Return(rec, nil)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations/"+rec.ID.String()+"/export?format=docx", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSourceURL(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)
		svc.On("SourceURL", mock.Anything, id, domain.DocumentKindInvoice).
			Return("https://s3.example.com/signed", nil)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations/"+id.String()+"/source/invoice", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://s3.example.com/signed")
	})

	t.Run("invalid_kind", func(t *testing.T) {
		svc := new(mocks.MockReconciliationService)

		req := httptest.NewRequest(http.MethodGet, "/reconciliations/"+id.String()+"/source/receipt", nil)
		w := httptest.NewRecorder()

		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SourceURL", mock.Anything, mock.Anything, mock.Anything)
	})
}
