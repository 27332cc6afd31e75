package handler

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	documentsdomain "bookkeeping-app-go/internal/domain/documents"
	"github.com/go-chi/chi/v5"
)

const (
	uploadsPrefix       = "/uploads/"
	multipartMemory     = 32 << 20
	multipartFilesField = "files"
)

type documentResponse struct {
	ID         uint   `json:"id"`
	FileName   string `json:"fileName"`
	FileURL    string `json:"fileURL"`
	Quarter    string `json:"quarter"`
	Year       int    `json:"year"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

type uploadResponse struct {
	Files []documentResponse `json:"files"`
}

func (h *Handlers) UploadDocuments(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.log.BusinessError("documents.upload: invalid multipart body", err)
		writeError(w, http.StatusBadRequest, "invalid_form", "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := documentsdomain.UploadInput{
		FormName: r.FormValue("form_name"),
		Quarter:  r.FormValue("quarter"),
	}
	if raw := strings.TrimSpace(r.FormValue("client_id")); raw != "" {
		clientID, err := parseID(raw)
		if err != nil {
			h.log.BusinessError("documents.upload: invalid client id", err, "client_id", raw)
			writeError(w, http.StatusBadRequest, "invalid_id", "invalid client_id")
			return
		}
		input.ClientID = clientID
	}
	if raw := strings.TrimSpace(r.FormValue("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year <= 0 {
			h.log.BusinessError("documents.upload: invalid year", errors.New("invalid year"), "year", raw)
			writeError(w, http.StatusBadRequest, "validation_error", "invalid year")
			return
		}
		input.Year = year
	}
	for _, header := range r.MultipartForm.File[multipartFilesField] {
		input.Files = append(input.Files, uploadFile(header))
	}

	result, err := h.Documents.Upload(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, documentsdomain.ErrMissingFields):
			h.log.BusinessError("documents.upload: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", "missing required fields")
		case errors.Is(err, documentsdomain.ErrInvalidQuarter),
			errors.Is(err, documentsdomain.ErrNoFiles),
			errors.Is(err, documentsdomain.ErrFileTooLarge):
			h.log.BusinessError("documents.upload: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, documentsdomain.ErrFormNotFound):
			h.log.BusinessError("documents.upload: unknown form", err, "form_name", input.FormName)
			writeError(w, http.StatusBadRequest, "invalid_form_name", "invalid form name")
		case errors.Is(err, documentsdomain.ErrClientNotFound):
			h.log.BusinessError("documents.upload: unknown client", err, "client_id", input.ClientID)
			writeError(w, http.StatusNotFound, "not_found", "client not found")
		default:
			h.log.InternalError("documents.upload: upload failed", err)
			writeInternalError(w)
		}
		return
	}

	for _, failure := range result.Failures {
		h.log.InternalError("documents.upload: file failed", failure.Err,
			"client_id", input.ClientID,
			"file", failure.FileName,
			"stage", failure.Stage,
		)
	}

	resp := uploadResponse{Files: make([]documentResponse, 0, len(result.Documents))}
	for _, doc := range result.Documents {
		resp.Files = append(resp.Files, documentResponse{
			ID:       doc.ID,
			FileName: doc.FileName,
			FileURL:  uploadsPrefix + doc.FilePath,
			Quarter:  doc.Quarter,
			Year:     doc.Year,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListAllDocuments(w http.ResponseWriter, r *http.Request) {
	grouped, err := h.Documents.ListAll(r.Context())
	if err != nil {
		h.log.InternalError("documents.list_all: list failed", err)
		writeInternalError(w)
		return
	}

	resp := make(map[string]map[string][]documentResponse, len(grouped))
	for client, forms := range grouped {
		resp[client] = toDocumentGroups(forms)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListClientDocuments(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		h.log.BusinessError("documents.list_client: invalid client id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid client id")
		return
	}

	grouped, err := h.Documents.ListByClient(r.Context(), clientID)
	if err != nil {
		h.log.InternalError("documents.list_client: list failed", err, "client_id", clientID)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentGroups(grouped))
}

func (h *Handlers) ListClientFormDocuments(w http.ResponseWriter, r *http.Request) {
	clientID, err := parseIDParam(r, "id")
	if err != nil {
		h.log.BusinessError("documents.list_client_form: invalid client id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid client id")
		return
	}
	formName := chi.URLParam(r, "formName")

	rows, err := h.Documents.ListByClientForm(r.Context(), clientID, formName)
	if err != nil {
		h.log.InternalError("documents.list_client_form: list failed", err,
			"client_id", clientID,
			"form_name", formName,
		)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponses(rows))
}

func (h *Handlers) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.log.BusinessError("documents.download: invalid id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid document id")
		return
	}

	download, err := h.Documents.Open(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, documentsdomain.ErrDocumentNotFound):
			h.log.BusinessError("documents.download: not found", err, "document_id", id)
			writeError(w, http.StatusNotFound, "not_found", "document not found")
		case errors.Is(err, documentsdomain.ErrBlobNotFound):
			h.log.BusinessError("documents.download: blob missing", err, "document_id", id)
			writeError(w, http.StatusNotFound, "not_found", "file not found")
		default:
			h.log.InternalError("documents.download: open failed", err, "document_id", id)
			writeInternalError(w)
		}
		return
	}
	defer download.Content.Close()

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(download.FileName)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": path.Base(filepath.ToSlash(download.FileName)),
	}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Content); err != nil {
		h.log.InternalError("documents.download: stream interrupted", err, "document_id", id)
	}
}

func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		h.log.BusinessError("documents.delete: invalid id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid document id")
		return
	}

	_, err = h.Documents.Delete(r.Context(), id)
	if err != nil {
		var blobErr *documentsdomain.BlobError
		switch {
		case errors.As(err, &blobErr):
			h.log.InternalError("documents.delete: blob not removed", err, "document_id", id, "blob", blobErr.Name)
		case errors.Is(err, documentsdomain.ErrDocumentNotFound):
			h.log.BusinessError("documents.delete: not found", err, "document_id", id)
			writeError(w, http.StatusNotFound, "not_found", "document not found")
			return
		default:
			h.log.InternalError("documents.delete: delete failed", err, "document_id", id)
			writeInternalError(w)
			return
		}
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Document deleted successfully"})
}

func uploadFile(header *multipart.FileHeader) documentsdomain.UploadFile {
	return documentsdomain.UploadFile{
		Name: header.Filename,
		Size: header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

func toDocumentGroups(grouped map[string][]documentsdomain.DocumentRow) map[string][]documentResponse {
	resp := make(map[string][]documentResponse, len(grouped))
	for form, rows := range grouped {
		resp[form] = toDocumentResponses(rows)
	}
	return resp
}

func toDocumentResponses(rows []documentsdomain.DocumentRow) []documentResponse {
	resp := make([]documentResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, documentResponse{
			ID:         row.ID,
			FileName:   row.FileName,
			FileURL:    uploadsPrefix + row.FilePath,
			Quarter:    row.Quarter,
			Year:       row.Year,
			UploadedAt: formatTimestamp(row.UploadedAt),
		})
	}
	return resp
}
