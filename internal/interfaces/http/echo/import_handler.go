package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/importer"
)

type ImportHandler struct {
	startImport importer.StartImport
	getProgress importer.GetImportProgress
}

func NewImportHandler(startImport importer.StartImport, getProgress importer.GetImportProgress) *ImportHandler {
	return &ImportHandler{startImport: startImport, getProgress: getProgress}
}

// ImportPosts accepts the CSV upload and answers with the job id as soon as
// the task is queued; it never waits for processing.
func (h *ImportHandler) ImportPosts(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "The file field is required"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Unable to read the uploaded file"})
	}
	defer src.Close()

	out, err := h.startImport.Execute(c.Request().Context(), importer.StartImportInput{
		Filename:     fileHeader.Filename,
		Size:         fileHeader.Size,
		File:         src,
		ActingUserID: CurrentUser(c).ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrMissingFile):
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "The file field is required"})
		case errors.Is(err, importer.ErrInvalidFileType):
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "Only .csv files are allowed"})
		case errors.Is(err, importer.ErrFileTooLarge):
			return c.JSON(http.StatusBadRequest, msgResponse{Msg: "The file must not exceed 2MB"})
		}
		return c.JSON(http.StatusInternalServerError, msgResponse{Msg: "Failed to start the import"})
	}

	return c.JSON(http.StatusOK, out)
}

// ImportProgress reports the job's current state from the progress store.
// Unknown ids read as {0, PENDING}.
func (h *ImportHandler) ImportProgress(c echo.Context) error {
	out, err := h.getProgress.Execute(c.Request().Context(), c.Param("task_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, msgResponse{Msg: "Failed to read import progress"})
	}
	return c.JSON(http.StatusOK, out)
}
