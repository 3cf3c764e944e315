package ui

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"telemarketing/internal/errors"
	"telemarketing/ui/middleware"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

// handleIndex renders the page with the session's current filters
func (s *Server) handleIndex(c *gin.Context) {
	sess := middleware.Session(c)
	s.renderTemplate(c, http.StatusOK, "index.html", s.newPage(s.service.Render(sess, nil)))
}

// handleUpload replaces the session's table with the uploaded file. A failed
// upload keeps the previous table and shows the error inline.
func (s *Server) handleUpload(c *gin.Context) {
	sess := middleware.Session(c)

	header, err := c.FormFile("dataset")
	if err != nil {
		s.renderError(c, errors.InvalidInput("Choose a CSV or Excel file to upload."))
		return
	}
	file, err := header.Open()
	if err != nil {
		s.renderError(c, errors.Wrap(err, "The uploaded file could not be opened."))
		return
	}
	defer file.Close()

	if err := s.service.Upload(c.Request.Context(), sess, header.Filename, file); err != nil {
		s.renderError(c, err)
		return
	}
	s.renderTemplate(c, http.StatusOK, "index.html", s.newPage(s.service.Render(sess, nil)))
}

// handleFilters applies the submitted multi-select values
func (s *Server) handleFilters(c *gin.Context) {
	sess := middleware.Session(c)
	_, raw := sess.Data()
	if raw.IsEmpty() {
		s.renderError(c, errors.MissingData("Upload a CSV or Excel file before filtering."))
		return
	}

	selections := make(map[string][]string)
	for _, field := range s.service.Fields() {
		if values := c.PostFormArray(field.Column); len(values) > 0 {
			selections[field.Column] = values
		}
	}
	applied := c.PostForm("applied") == "1"

	spec := s.service.SpecFromSelections(raw, selections, applied)
	s.renderTemplate(c, http.StatusOK, "index.html", s.newPage(s.service.Render(sess, spec)))
}

// handleExport sends the filtered table as a spreadsheet download
func (s *Server) handleExport(c *gin.Context) {
	sess := middleware.Session(c)
	data, err := s.service.Export(sess)
	if err != nil {
		s.renderError(c, err)
		return
	}

	filename, _ := sess.Data()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(filename)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// renderError shows err on the page, keeping whatever the session already holds
func (s *Server) renderError(c *gin.Context, err error) {
	sess := middleware.Session(c)
	s.logger.Warn("session %s: %v", sess.ID, err)

	view := s.service.Render(sess, nil)
	view.AddError(err)
	s.renderTemplate(c, statusFor(err), "index.html", s.newPage(view))
}

// statusFor maps an error code to the HTTP status of the re-rendered page
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeUnsupportedFormat, errors.CodeInvalidInput, errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeMissingData, errors.CodeEmptyResult:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// exportName derives the download name from the uploaded file
func exportName(uploaded string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "data"
	}
	return base + "_filtered.xlsx"
}
