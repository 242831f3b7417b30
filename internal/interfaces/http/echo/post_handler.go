package echo

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/post"
)

type PostHandler struct {
	list     post.ListPosts
	get      post.GetPost
	create   post.CreatePost
	update   post.UpdatePost
	remove   post.DeletePosts
	exporter post.ExportPosts
}

func NewPostHandler(list post.ListPosts, get post.GetPost, create post.CreatePost, update post.UpdatePost, remove post.DeletePosts, exporter post.ExportPosts) *PostHandler {
	return &PostHandler{list: list, get: get, create: create, update: update, remove: remove, exporter: exporter}
}

func (h *PostHandler) List(c echo.Context) error {
	in := post.ListPostsInput{
		Name:        c.QueryParam("name"),
		Description: c.QueryParam("description"),
	}
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.PerPage, _ = strconv.Atoi(c.QueryParam("per_page"))

	if raw := c.QueryParam("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "status must be an integer")
		}
		in.Status = &status
	}
	if raw := c.QueryParam("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		in.Date = &date
	}

	out, err := h.list.Execute(c.Request().Context(), in)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) Show(c echo.Context) error {
	id, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	out, err := h.get.Execute(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return notFound(c, "post not found")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type createPostRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      int    `json:"status" validate:"oneof=0 1"`
}

func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.create.Execute(c.Request().Context(), post.CreatePostInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		ActingUserID: CurrentUser(c).ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, post.ErrTitleTaken):
			return conflict(c, "title is already taken")
		case errors.Is(err, post.ErrInvalidPost):
			return badRequest(c, "invalid post")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

type updatePostRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *int    `json:"status"`
}

func (h *PostHandler) Update(c echo.Context) error {
	id, err := pathID(c, "post_id")
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	out, err := h.update.Execute(c.Request().Context(), post.UpdatePostInput{
		PostID:       id,
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		ActingUserID: CurrentUser(c).ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, post.ErrPostNotFound):
			return notFound(c, "post not found")
		case errors.Is(err, post.ErrTitleTaken):
			return conflict(c, "title is already taken")
		case errors.Is(err, post.ErrInvalidPost):
			return badRequest(c, "invalid post")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type deletePostsRequest struct {
	PostIDs []int64 `json:"post_ids"`
}

func (h *PostHandler) MultipleDelete(c echo.Context) error {
	var req deletePostsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	out, err := h.remove.Execute(c.Request().Context(), req.PostIDs, CurrentUser(c).ID)
	if err != nil {
		switch {
		case errors.Is(err, post.ErrNoPostIDs):
			return badRequest(c, "post_ids must not be empty")
		case errors.Is(err, post.ErrPostNotFound):
			return notFound(c, "no matching posts")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// Export streams the CSV straight into the response body.
func (h *PostHandler) Export(c echo.Context) error {
	filename := fmt.Sprintf("posts_%s.csv", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	return h.exporter.Execute(c.Request().Context(), c.Response())
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{Code: "bad_request", Message: msg}})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{Code: "not_found", Message: msg}})
}

func conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{Code: "conflict", Message: msg}})
}
