package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"qrcut/internal/database"
	"qrcut/internal/qrmask"
	"qrcut/internal/service"
)

const (
	// MetadataHeader carries the JSON summary of a processing response.
	MetadataHeader = "X-QR-Cut-Metadata"

	defaultFillColor = "#000000"
	defaultOpacity   = "1.0"
	defaultShape     = string(qrmask.ShapeRectangle)
	defaultFormat    = string(qrmask.FormatPNG)
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing and status mapping only.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.ProcessingService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/process", ProcessImages(svc))
	api.Get("/logs", ListLogs(svc))
}

// HealthCheck godoc
// @Summary      Readiness probe
// @Description  Reports ok when the log database answers a ping.
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} errorPayload
// @Router       /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.Ping(c.UserContext(), db, 2*time.Second); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ProcessImages godoc
// @Summary      Mask QR codes
// @Description  Detects QR codes in every uploaded image and covers them. One file yields the image, several yield a zip.
// @Tags         processing
// @Accept       multipart/form-data
// @Produce      image/png,image/jpeg,application/zip
// @Param        files          formData file   true  "Images to process (repeatable)"
// @Param        fill_color     formData string false "CSS color or 'transparent'" default(#000000)
// @Param        opacity        formData number false "Fill opacity between 0 and 1" default(1.0)
// @Param        shape          formData string false "rectangle or ellipse" default(rectangle)
// @Param        output_format  formData string false "PNG or JPEG" default(PNG)
// @Success      200 {file} binary
// @Header       200 {string} X-QR-Cut-Metadata "JSON summary of the processed images"
// @Failure      400 {object} errorPayload
// @Failure      422 {object} errorPayload
// @Failure      500 {object} errorPayload
// @Router       /api/process [post]
func ProcessImages(svc service.ProcessingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil || len(form.File["files"]) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one image must be provided")
		}

		opts, err := parseOptions(c)
		if err != nil {
			return writeProcessingError(c, err)
		}

		uploads, err := readUploads(form.File["files"])
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		res, err := svc.Process(c.UserContext(), uploads, opts)
		if err != nil {
			return writeProcessingError(c, err)
		}

		meta, err := encodeMetadata(res)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.DownloadName))
		c.Set(MetadataHeader, meta)
		return c.Status(fiber.StatusOK).Send(res.Body)
	}
}

// ListLogs godoc
// @Summary      Recent processing logs
// @Description  Returns up to 50 log rows, newest first.
// @Tags         logs
// @Produce      json
// @Success      200 {array}  model.ProcessLog
// @Failure      500 {object} errorPayload
// @Router       /api/logs [get]
func ListLogs(svc service.ProcessingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := svc.RecentLogs(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(rows)
	}
}

func parseOptions(c *fiber.Ctx) (qrmask.Options, error) {
	opacity, err := strconv.ParseFloat(strings.TrimSpace(formValue(c, "opacity", defaultOpacity)), 64)
	if err != nil {
		return qrmask.Options{}, fmt.Errorf("%w: opacity must be a number", qrmask.ErrInvalidOptions)
	}
	return qrmask.NewOptions(
		formValue(c, "fill_color", defaultFillColor),
		opacity,
		formValue(c, "shape", defaultShape),
		formValue(c, "output_format", defaultFormat),
	)
}

func formValue(c *fiber.Ctx, key, def string) string {
	if v := c.FormValue(key); v != "" {
		return v
	}
	return def
}

func readUploads(headers []*multipart.FileHeader) ([]service.Upload, error) {
	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, service.Upload{Filename: fh.Filename, Data: data})
	}
	return uploads, nil
}

// encodeMetadata renders the metadata header without HTML escaping so
// filenames round-trip as sent.
func encodeMetadata(res *service.BatchResult) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res.Metadata); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
