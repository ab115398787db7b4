package analysis

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"verdicto-api/internal/extract"
	"verdicto-api/internal/shared/server/respond"
	"verdicto-api/internal/shared/telemetry"
)

const defaultMaxDocumentBytes = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	MaxBytes int64
}

// NewHandler constructs a Handler. maxBytes <= 0 uses a 1MB cap.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxDocumentBytes
	}
	return &Handler{Svc: svc, MaxBytes: maxBytes}
}

// RegisterRoutes attaches the analyze route. Extra handlers run before it.
func (h *Handler) RegisterRoutes(rg gin.IRoutes, pre ...gin.HandlerFunc) {
	rg.POST("/analyze", append(pre, h.analyze)...)
}

type analyzeRequest struct {
	Document string `json:"document"`
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)

	document, err := h.readDocument(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	res, err := h.Svc.Analyze(c.Request.Context(), document)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("riskLevel", res.Risks[0].RiskLevel)
	respond.OK(c, res)
}

// readDocument accepts the document as a query or form parameter, a JSON
// body, a raw text body, or an uploaded file in the multipart field "file".
func (h *Handler) readDocument(c *gin.Context) (string, error) {
	if doc, ok := c.GetQuery("document"); ok {
		return doc, nil
	}

	switch c.ContentType() {
	case gin.MIMEJSON:
		var req analyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", &requestError{msg: "invalid request body", err: err}
		}
		return req.Document, nil
	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return "", &requestError{msg: "invalid form body", err: err}
		}
		return c.Request.PostForm.Get("document"), nil
	case gin.MIMEMultipartPOSTForm:
		if doc, ok := c.GetPostForm("document"); ok {
			return doc, nil
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return "", &requestError{msg: "document or file is required", err: err}
		}
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		text, err := extract.Text(c.Request.Context(), data, fh.Header.Get("Content-Type"), fh.Filename)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedDocument, err)
		}
		return text, nil
	default:
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// requestError is a client mistake whose message is safe to return.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *requestError) Unwrap() error { return e.err }

func (h *Handler) fail(c *gin.Context, err error) {
	var (
		tooLarge *http.MaxBytesError
		badReq   *requestError
	)
	switch {
	case errors.As(err, &tooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("document exceeds %d bytes", tooLarge.Limit), nil)
	case errors.Is(err, ErrEmptyDocument):
		respond.Error(c, http.StatusBadRequest, "validation_error", "document is required", nil)
	case errors.Is(err, ErrUnsupportedDocument):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_document", "unable to read text from document", nil)
	case errors.Is(err, ErrModelUnavailable):
		telemetry.Error("analysis.model_unavailable", map[string]any{"error": err})
		respond.Error(c, http.StatusServiceUnavailable, "model_unavailable", "analysis model unavailable", nil)
	case errors.As(err, &badReq):
		respond.Error(c, http.StatusBadRequest, "validation_error", badReq.msg, nil)
	default:
		telemetry.Error("analysis.failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}
