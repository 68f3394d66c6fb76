package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/chazuruo/chatfill/internal/docx"
	cferrors "github.com/chazuruo/chatfill/internal/errors"
	"github.com/chazuruo/chatfill/internal/placeholder"
)

// uploadResponse is the payload returned for a parsed template.
type uploadResponse struct {
	FileName     string                    `json:"fileName"`
	HTML         string                    `json:"html"`
	Markdown     string                    `json:"markdown"`
	Placeholders []placeholder.Placeholder `json:"placeholders"`
}

// downloadRequest carries the filled markup back for document generation.
type downloadRequest struct {
	HTML     string `json:"html"`
	FileName string `json:"fileName"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	maxBytes := s.cfg.Server.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.rejectUpload(w, &cferrors.DocumentError{Op: "upload", Err: cferrors.ErrTooLarge})
			return
		}
		s.rejectUpload(w, &cferrors.DocumentError{Op: "upload", Err: cferrors.ErrInvalid})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer file.Close()

	ext := s.cfg.Upload.Extension
	if !strings.HasSuffix(strings.ToLower(header.Filename), ext) {
		s.rejectUpload(w, &cferrors.DocumentError{Op: "upload", Name: header.Filename, Err: cferrors.ErrUnsupported})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Failed to read the uploaded file.")
		return
	}
	if int64(len(data)) > maxBytes {
		s.rejectUpload(w, &cferrors.DocumentError{Op: "upload", Name: header.Filename, Err: cferrors.ErrTooLarge})
		return
	}

	doc, err := docx.Read(data)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID(r.Context()),
			"file":       header.Filename,
			"error":      err.Error(),
		}).Warn("document parse failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to process the document.")
		return
	}

	// Placeholder extraction and the markdown rendition are
	// independent passes over the parsed document, so run them
	// side by side.
	var (
		wg           sync.WaitGroup
		placeholders []placeholder.Placeholder
		markdown     string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		placeholders = placeholder.Extract(doc.Text)
	}()
	go func() {
		defer wg.Done()
		md, convErr := docx.NewMarkdownConverter().Convert(doc.HTML)
		if convErr != nil {
			return
		}
		markdown = md
	}()
	wg.Wait()

	if placeholders == nil {
		placeholders = []placeholder.Placeholder{}
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		FileName:     header.Filename,
		HTML:         doc.HTML,
		Markdown:     markdown,
		Placeholders: placeholders,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed.")
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing document content.")
		return
	}
	if strings.TrimSpace(req.FileName) == "" {
		writeJSONError(w, http.StatusBadRequest, "File name is required.")
		return
	}

	data, err := docx.Write(req.HTML)
	if err != nil || len(data) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID(r.Context()),
			"error":      fmt.Sprint(err),
		}).Warn("document generation failed")
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate the document.")
		return
	}

	name := s.completedFileName(req.FileName)
	w.Header().Set("Content-Type", docx.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// rejectUpload maps a classified upload error onto its HTTP status and
// client-facing message.
func (s *Server) rejectUpload(w http.ResponseWriter, err error) {
	switch {
	case cferrors.IsTooLarge(err):
		writeJSONError(w, http.StatusRequestEntityTooLarge, tooLargeMessage(s.cfg.Server.MaxUploadBytes))
	case cferrors.IsUnsupported(err):
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Please upload a %s file.", s.cfg.Upload.Extension))
	default:
		writeJSONError(w, http.StatusBadRequest, "Invalid upload request.")
	}
}

// completedFileName derives the download name from the uploaded one,
// inserting the configured suffix before the extension.
func (s *Server) completedFileName(name string) string {
	base := path.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == "/" {
		base = "document" + s.cfg.Upload.Extension
	}
	ext := s.cfg.Upload.Extension
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "document"
	}
	return stem + s.cfg.Upload.CompletedSuffix + ext
}

// contentDisposition builds an attachment header with a percent-encoded
// UTF-8 filename alongside a plain fallback.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(name))
}

func tooLargeMessage(maxBytes int64) string {
	return fmt.Sprintf("File too large. Maximum size is %d MB.", maxBytes>>20)
}
