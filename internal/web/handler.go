package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/Ambition09/meeshodashboard/internal/engine"
	"github.com/Ambition09/meeshodashboard/internal/service"
	"github.com/Ambition09/meeshodashboard/pkg/utils"
)

// Handler serves the report API
type Handler struct {
	Reconciler *service.Reconciler
	// ReportDir root directory of generated reports
	ReportDir string
	// UploadDir uploads are kept here while a report is generated
	UploadDir string
}

// ErrorResponse body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func errorJSON(c echo.Context, code int, format string, args ...interface{}) error {
	return c.JSON(code, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

// CreateReport
// Reconcile uploaded exports and generate a report
// @Summary      Generate a sales and claims report
// @Description  upload the orders export (csv or xlsx) and optionally the claims export
// @Tags         report
// @Accept       multipart/form-data
// @Produce      json
// @Param        orders   formData  file  true   "Orders export"
// @Param        claims   formData  file  false  "Claims export"
// @Success      200  {object}  model.ReportResult
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /report [post]
func (h *Handler) CreateReport(c echo.Context) error {
	orders, err := c.FormFile("orders")
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "the orders file must be provided")
	}
	claims, err := c.FormFile("claims")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return errorJSON(c, http.StatusBadRequest, "read claims file: %v", err)
	}

	id := uuid.NewString()
	ordersPath, err := h.saveUpload(id, orders)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "%v", err)
	}
	defer h.removeUpload(ordersPath)

	var claimsPath string
	if claims != nil {
		if claimsPath, err = h.saveUpload(id, claims); err != nil {
			return errorJSON(c, http.StatusInternalServerError, "%v", err)
		}
		defer h.removeUpload(claimsPath)
	}

	out, err := h.Reconciler.ReconcileFiles(ordersPath, claimsPath)
	if err != nil {
		log.Errorf("reconcile upload %s failed, err:%v", id, err)
		if service.IsBadInput(err) {
			return errorJSON(c, http.StatusBadRequest, "%v", err)
		}
		return errorJSON(c, http.StatusInternalServerError, "%v", err)
	}

	filename, err := service.WriteOutcome(h.ReportDir, id, out)
	if err != nil {
		log.Errorf("write report %s failed, err:%v", id, err)
		return errorJSON(c, http.StatusInternalServerError, "%v", err)
	}
	return c.JSON(http.StatusOK, out.ToResult(filename))
}

// saveUpload stores an uploaded file as {UploadDir}/{id}_{name} keeping its extension
func (h *Handler) saveUpload(id string, fh *multipart.FileHeader) (string, error) {
	if !utils.IsDir(h.UploadDir) && !utils.CreateDir(h.UploadDir) {
		return "", fmt.Errorf("create upload directory failed: %s", h.UploadDir)
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path := filepath.Join(h.UploadDir, id+"_"+filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save upload %s: %w", fh.Filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("save upload %s: %w", fh.Filename, err)
	}
	return path, nil
}

func (h *Handler) removeUpload(path string) {
	if err := os.Remove(path); err != nil {
		log.Warnf("remove upload %s: %v", path, err)
	}
}

// DownloadReport
// Download a generated report
// @Summary      Download report excel
// @Description  get file by filename
// @Tags         report
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        filename   path      string  true   "Report filename"
// @Param        download   query     int     false  "Download file"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /report/{filename} [get]
func (h *Handler) DownloadReport(c echo.Context) error {
	if !utils.IsDir(h.ReportDir) {
		return errorJSON(c, http.StatusInternalServerError, "the report root directory: %s does not exist", h.ReportDir)
	}
	filename := c.Param("filename")
	if filename == "" {
		return errorJSON(c, http.StatusBadRequest, "the filename must be provided, but was empty")
	}

	path, err := utils.GetFilePathByFilename(h.ReportDir, filename, service.TimeLayout)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "the filename: %s format not supported", filename)
	}
	if !utils.IsExists(path) {
		return errorJSON(c, http.StatusNotFound, "the file: %s not found", filename)
	}

	if c.QueryParam("download") == "1" {
		return c.Attachment(path, filename)
	}
	return c.File(path)
}

// ListCosts
// Effective purchase cost table
// @Summary      List purchase costs
// @Tags         costs
// @Produce      json
// @Success      200  {array}  engine.CostEntry
// @Router       /costs [get]
func (h *Handler) ListCosts(c echo.Context) error {
	var entries []engine.CostEntry
	if h.Reconciler != nil {
		entries = h.Reconciler.Costs.Entries()
	}
	if entries == nil {
		entries = []engine.CostEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
