package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

const maxDocumentSize = 25 << 20 // 25 MiB

// DocumentHandlers manages file attachments on cases.
type DocumentHandlers struct {
	documentService services.DocumentService
}

func NewDocumentHandlers(documentService services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{documentService: documentService}
}

// UploadDocument accepts a multipart upload under the "file" field.
func (h *DocumentHandlers) UploadDocument(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	caseID, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "A file upload is required")
	}
	if fileHeader.Size > maxDocumentSize {
		return common.SendClientError(c, "File exceeds the 25 MiB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.documentService.Upload(c.Request().Context(), identity, caseID,
		fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandlers) ListDocuments(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	caseID, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	docs, err := h.documentService.ListByCase(c.Request().Context(), identity, caseID)
	if err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": docs})
}

// GetDocumentURL returns a short-lived presigned download URL.
func (h *DocumentHandlers) GetDocumentURL(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	documentID, err := common.ValidateUUID(c.Param("did"), "document ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.documentService.DownloadURL(c.Request().Context(), identity, documentID)
	if err != nil {
		return serviceError(c, err, "document")
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *DocumentHandlers) DeleteDocument(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	documentID, err := common.ValidateUUID(c.Param("did"), "document ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.documentService.Delete(c.Request().Context(), identity, documentID); err != nil {
		return serviceError(c, err, "document")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Document deleted"})
}
