package handler

import (
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"claimdesk.app/server/common"
	"claimdesk.app/server/common/logger"
	"claimdesk.app/server/internal/http/dto"
	"claimdesk.app/server/internal/model"
	"claimdesk.app/server/internal/service"
)

const filesField = "files"

type ClaimHandler struct {
	claimService service.ClaimService
}

func NewClaimHandler(claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

func (h *ClaimHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	claims, err := h.claimService.List(c.Request.Context(), a, c.Query("q"))
	if err != nil {
		respondError(c, err, "failed to list claims")
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": dto.ToClaimResponses(claims)})
}

func (h *ClaimHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req dto.ClaimRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBodyError(c, err, err.Error())
		return
	}

	var files []service.UploadedFile
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			respondBodyError(c, err, "invalid multipart body")
			return
		}
		for _, fh := range form.File[filesField] {
			files = append(files, uploadedFile(fh))
		}
	}

	result, err := h.claimService.Create(c.Request.Context(), a, req.ToInput(), files)
	if err != nil {
		respondError(c, err, "failed to create claim")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreateClaimResponse(result))
}

func (h *ClaimHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	claimID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.claimService.Get(c.Request.Context(), a, claimID)
	if err != nil {
		respondError(c, err, "failed to get claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimDetailResponse(detail))
}

// AddComment posts a comment and answers with the refreshed claim detail.
func (h *ClaimHandler) AddComment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	claimID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{ClaimID: &claimID})
	logger.AnnotateSpan(ctx)
	if _, err := h.claimService.AddComment(ctx, a, claimID, req.Content); err != nil {
		respondError(c, err, "failed to add comment")
		return
	}

	detail, err := h.claimService.Get(ctx, a, claimID)
	if err != nil {
		respondError(c, err, "failed to get claim")
		return
	}

	c.JSON(http.StatusCreated, dto.ToClaimDetailResponse(detail))
}

func (h *ClaimHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	claimID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ClaimRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim, err := h.claimService.Update(c.Request.Context(), a, claimID, req.ToInput())
	if err != nil {
		respondError(c, err, "failed to update claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(*claim))
}

func (h *ClaimHandler) ChangeStatus(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	claimID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.StatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	claim, err := h.claimService.ChangeStatus(c.Request.Context(), a, claimID, model.ClaimStatus(req.Status))
	if err != nil {
		respondError(c, err, "failed to change claim status")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(*claim))
}

func (h *ClaimHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	claimID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.claimService.Delete(c.Request.Context(), a, claimID); err != nil {
		respondError(c, err, "failed to delete claim")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ClaimHandler) DownloadAttachment(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	claimID, ok := pathID(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := pathID(c, "attachmentId")
	if !ok {
		return
	}

	attachment, body, err := h.claimService.OpenAttachment(c.Request.Context(), a, claimID, attachmentID)
	if err != nil {
		respondError(c, err, "failed to open attachment")
		return
	}
	defer body.Close()

	disposition := "attachment"
	if attachment.IsImage() || attachment.IsPDF() {
		disposition = "inline"
	}

	c.DataFromReader(http.StatusOK, attachment.SizeBytes, attachment.MIMEType, body, map[string]string{
		"Content-Disposition":    mime.FormatMediaType(disposition, map[string]string{"filename": common.SlugFilename(attachment.OriginalFilename, "attachment")}),
		"X-Content-Type-Options": "nosniff",
		"Cache-Control":          "private, max-age=" + strconv.Itoa(300),
	})
}

func uploadedFile(fh *multipart.FileHeader) service.UploadedFile {
	return service.UploadedFile{
		Name: fh.Filename,
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
