package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"procurement/models"
	"procurement/repository"
	"procurement/utils"
)

type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type Uploader interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// ExportHandler prints the vendor directory. With an Uploader the PDF is stored and its
// URL returned; without one the PDF is streamed back.
type ExportHandler struct {
	Repo     repository.VendorRepository
	Renderer PDFRenderer
	Uploader Uploader
	Logger   *slog.Logger
	Now      func() time.Time
}

// ExportVendors handles GET /vendors/export?search=
func (h *ExportHandler) ExportVendors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	vendors, err := h.allVendors(ctx, r.URL.Query().Get("search"))
	if err != nil {
		h.Logger.Error("export vendors: list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch vendors")
		return
	}

	html, err := utils.VendorDirectoryHTML(vendors, now())
	if err != nil {
		h.Logger.Error("export vendors: template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}
	pdfBytes, err := h.Renderer.RenderPDF(ctx, html)
	if err != nil {
		h.Logger.Error("export vendors: render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("vendors_%d.pdf", now().Unix())

	if h.Uploader == nil {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
		return
	}

	url, err := h.Uploader.Upload(ctx, pdfBytes, filename, "application/pdf")
	if err != nil {
		h.Logger.Error("export vendors: upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to upload PDF")
		return
	}
	h.Logger.Info("vendor directory exported", "vendors", len(vendors), "url", url)
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Vendor directory exported",
		Data:    map[string]string{"file": url},
	})
}

func (h *ExportHandler) allVendors(ctx context.Context, search string) ([]models.Vendor, error) {
	filters := models.ListFilters{Page: 1, Limit: models.MaxLimit, Search: search}
	var all []models.Vendor
	for {
		page, total, err := h.Repo.ListVendors(ctx, filters)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) == 0 || int64(len(all)) >= total {
			return all, nil
		}
		filters.Page++
	}
}
