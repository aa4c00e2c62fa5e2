package handler

import (
    "io"            // streaming the upload to disk
    "net/http"      // HTTP status codes
    "os"            // directory creation and file writing
    "path/filepath" // safe path joining

    "github.com/google/uuid"      // unique file name prefix
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/vehicle-rental/internal/config" // upload directory
)

// UploadHandler stores vehicle images on disk and returns the public
// URL under which they are served. Uploads are admin-gated: the only
// consumer is vehicle creation.
type UploadHandler struct {
	Cfg config.Config
}

func NewUploadHandler(cfg config.Config) *UploadHandler { return &UploadHandler{Cfg: cfg} }

// Upload handles POST /upload. The file lands in the upload directory
// under a generated name `<uuid>_<original name>` so repeated uploads
// of the same file never collide.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file uploaded"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "open upload failed"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload dir unavailable"})
	}
	name := uuid.NewString() + "_" + filepath.Base(fh.Filename)
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write upload failed"})
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "write upload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"url": "/uploads/" + name})
}
