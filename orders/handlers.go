package orders

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"kedai/models"
	"kedai/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

// Handler exposes the order history and attachment surface.
type Handler struct {
	Svc       *Service
	UploadDir string // attachments land here, served under /attachpic
}

func NewHandler(svc *Service, uploadDir string) *Handler {
	return &Handler{Svc: svc, UploadDir: uploadDir}
}

// GetOrders returns the visible order log, most recent first.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := h.Svc.Orders(ctx)
	if err != nil {
		log.Println("GetOrders load error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// AttachImages accepts a multipart upload of one or more images and attaches
// each to the order. Files are processed concurrently and each successful
// encode enqueues its own attach, so the stored order among a batch is
// whatever completion order the writer sees.
func (h *Handler) AttachImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")
	if _, err := h.Svc.Get(ctx, orderID); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart payload", http.StatusBadRequest)
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		http.Error(w, "No images provided", http.StatusBadRequest)
		return
	}

	var wg sync.WaitGroup
	for _, fh := range files {
		wg.Add(1)
		go func(fh *multipart.FileHeader) {
			defer wg.Done()
			ref, err := h.saveAttachment(fh)
			if err != nil {
				log.Println("AttachImages save error:", err)
				return
			}
			if err := h.Svc.Attach(ctx, orderID, ref); err != nil {
				log.Println("AttachImages attach error:", err)
			}
		}(fh)
	}
	wg.Wait()

	order, err := h.Svc.Get(ctx, orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// saveAttachment decodes the upload, bounds it to a reasonable size, and
// writes it to the upload dir as a JPEG.
func (h *Handler) saveAttachment(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	img = imaging.Fit(img, 1600, 1600, imaging.Lanczos)

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	fileName := utils.GenerateID(16) + ".jpg"
	if err := imaging.Save(img, filepath.Join(h.UploadDir, fileName)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return "/attachpic/" + fileName, nil
}

// RemoveImage deletes the attachment at the given index.
func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("orderid")
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		http.Error(w, "Invalid image index", http.StatusBadRequest)
		return
	}

	switch err := h.Svc.RemoveImage(ctx, orderID, index); err {
	case nil:
	case ErrOrderNotFound:
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	case ErrImageIndex:
		http.Error(w, "Invalid image index", http.StatusBadRequest)
		return
	default:
		log.Println("RemoveImage error:", err)
		http.Error(w, "Failed to remove image", http.StatusInternalServerError)
		return
	}

	order, err := h.Svc.Get(ctx, orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}
