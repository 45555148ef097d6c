package handler

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/osse101/FleetSync_Go/internal/logger"
	"github.com/osse101/FleetSync_Go/internal/vehicles"
	"github.com/osse101/FleetSync_Go/internal/wincpl"
)

// WincplImporter applies a batch of Wincpl documents
type WincplImporter interface {
	Import(ctx context.Context, docs []wincpl.Document) vehicles.ImportReport
}

var _ WincplImporter = (*vehicles.Engine)(nil)

// WincplImportRequest is the JSON form of an import: one raw XML document per entry
type WincplImportRequest struct {
	Files []string `json:"files" validate:"required,min=1,max=200,dive,required"`
}

// WincplHandler accepts Wincpl XML exports
type WincplHandler struct {
	importer WincplImporter
}

// NewWincplHandler creates a WincplHandler
func NewWincplHandler(importer WincplImporter) *WincplHandler {
	return &WincplHandler{importer: importer}
}

// HandleImport imports Wincpl XML documents sent as multipart files or JSON strings
// @Summary Import Wincpl XML
// @Description Accepts multipart/form-data with one or more "files" parts, or JSON {"files": ["<ITEM ...>"]}.
// @Description Per-file failures are reported in the response; the rest of the batch is applied.
// @Tags wincpl
// @Accept mpfd,json
// @Produce json
// @Success 200 {object} vehicles.ImportReport
// @Failure 400 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /api/v1/wincpl/import [post]
func (h *WincplHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		docs []wincpl.Document
		ok   bool
	)
	switch mediaType {
	case "multipart/form-data":
		docs, ok = h.readMultipart(w, r)
	case "application/json", "":
		docs, ok = h.readJSON(w, r)
	default:
		respondError(w, http.StatusUnsupportedMediaType, ErrMsgUnsupportedType)
		return
	}
	if !ok {
		return
	}

	report := h.importer.Import(r.Context(), docs)
	logger.FromContext(r.Context()).Info(MsgImportFinished,
		"files", report.Files,
		"errors", len(report.Errors))
	respondJSON(w, http.StatusOK, report)
}

func (h *WincplHandler) readJSON(w http.ResponseWriter, r *http.Request) ([]wincpl.Document, bool) {
	var req WincplImportRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpWincplImport); err != nil {
		return nil, false
	}
	docs := make([]wincpl.Document, 0, len(req.Files))
	for i, body := range req.Files {
		docs = append(docs, wincpl.Document{
			Name: fmt.Sprintf("inline-%d.xml", i+1),
			Data: []byte(body),
		})
	}
	return docs, true
}

func (h *WincplHandler) readMultipart(w http.ResponseWriter, r *http.Request) ([]wincpl.Document, bool) {
	log := logger.FromContext(r.Context())
	if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
		log.Warn("Failed to parse multipart import", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return nil, false
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File[ImportFormField]
	switch {
	case len(headers) == 0:
		respondError(w, http.StatusBadRequest, ErrMsgNoImportFiles)
		return nil, false
	case len(headers) > MaxImportFiles:
		respondError(w, http.StatusBadRequest, ErrMsgTooManyFiles)
		return nil, false
	}

	docs := make([]wincpl.Document, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			log.Warn(ErrMsgReadUploadFail, "file", fh.Filename, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgReadUploadFail)
			return nil, false
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			log.Warn(ErrMsgReadUploadFail, "file", fh.Filename, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgReadUploadFail)
			return nil, false
		}
		docs = append(docs, wincpl.Document{Name: fh.Filename, Data: data})
	}
	return docs, true
}
