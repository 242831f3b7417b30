package echo

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/user"
)

type UserHandler struct {
	list   user.ListUsers
	get    user.GetUser
	create user.CreateUser
	update user.UpdateUser
	remove user.DeleteUsers
	lock   user.LockUsers
	unlock user.LockUsers
}

func NewUserHandler(list user.ListUsers, get user.GetUser, create user.CreateUser, update user.UpdateUser, remove user.DeleteUsers, lock, unlock user.LockUsers) *UserHandler {
	return &UserHandler{list: list, get: get, create: create, update: update, remove: remove, lock: lock, unlock: unlock}
}

func (h *UserHandler) List(c echo.Context) error {
	in := user.ListUsersInput{
		Name:         c.QueryParam("name"),
		Email:        c.QueryParam("email"),
		ActingUserID: CurrentUser(c).ID,
	}
	in.Page, _ = strconv.Atoi(c.QueryParam("page"))
	in.PerPage, _ = strconv.Atoi(c.QueryParam("per_page"))

	if raw := c.QueryParam("role"); raw != "" {
		role, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "role must be an integer")
		}
		in.Role = &role
	}
	var err error
	if in.StartDate, err = dateParam(c, "start_date"); err != nil {
		return err
	}
	if in.EndDate, err = dateParam(c, "end_date"); err != nil {
		return err
	}

	out, err := h.list.Execute(c.Request().Context(), in)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Show(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	out, err := h.get.Execute(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type createUserRequest struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
	Role     int    `form:"role" validate:"oneof=0 1"`
	Phone    string `form:"phone"`
	DOB      string `form:"dob"`
	Address  string `form:"address"`
}

// Create takes multipart form data so the profile image rides along with the
// user's fields.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := user.CreateUserInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		Phone:        req.Phone,
		Address:      req.Address,
		ActingUserID: CurrentUser(c).ID,
	}
	if req.DOB != "" {
		dob, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dob must be YYYY-MM-DD")
		}
		in.DOB = &dob
	}

	fileHeader, err := c.FormFile("profile")
	if err != nil {
		return badRequest(c, "the profile image is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "unable to read the profile image")
	}
	defer src.Close()
	in.ProfileName = fileHeader.Filename
	in.Profile = src

	out, err := h.create.Execute(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingProfile):
			return badRequest(c, "the profile image is required")
		case errors.Is(err, user.ErrNameTaken):
			return conflict(c, "name is already taken")
		case errors.Is(err, user.ErrEmailTaken):
			return conflict(c, "email is already taken")
		case errors.Is(err, user.ErrInvalidUser):
			return badRequest(c, "invalid user")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

type updateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Role    *int    `json:"role"`
	Phone   *string `json:"phone"`
	DOB     *string `json:"dob"`
	Address *string `json:"address"`
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	in := user.UpdateUserInput{
		UserID:       id,
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Phone:        req.Phone,
		Address:      req.Address,
		ActingUserID: CurrentUser(c).ID,
	}
	if req.DOB != nil {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "dob must be YYYY-MM-DD")
		}
		in.DOB = &dob
	}

	out, err := h.update.Execute(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			return notFound(c, "user not found")
		case errors.Is(err, user.ErrNameTaken):
			return conflict(c, "name is already taken")
		case errors.Is(err, user.ErrEmailTaken):
			return conflict(c, "email is already taken")
		case errors.Is(err, user.ErrInvalidUser):
			return badRequest(c, "invalid user")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type userIDsRequest struct {
	UserIDs []int64 `json:"user_ids"`
}

func (h *UserHandler) MultipleDelete(c echo.Context) error {
	return h.bulk(c, func(ctx echo.Context, ids []int64) (user.BulkUsersOutput, error) {
		return h.remove.Execute(ctx.Request().Context(), ids, CurrentUser(ctx).ID)
	})
}

func (h *UserHandler) Lock(c echo.Context) error {
	return h.bulk(c, func(ctx echo.Context, ids []int64) (user.BulkUsersOutput, error) {
		return h.lock.Execute(ctx.Request().Context(), ids)
	})
}

func (h *UserHandler) Unlock(c echo.Context) error {
	return h.bulk(c, func(ctx echo.Context, ids []int64) (user.BulkUsersOutput, error) {
		return h.unlock.Execute(ctx.Request().Context(), ids)
	})
}

func (h *UserHandler) bulk(c echo.Context, run func(echo.Context, []int64) (user.BulkUsersOutput, error)) error {
	var req userIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	out, err := run(c, req.UserIDs)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNoUserIDs):
			return badRequest(c, "user_ids must not be empty")
		case errors.Is(err, user.ErrUserNotFound):
			return notFound(c, "no matching users")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be YYYY-MM-DD")
	}
	return &t, nil
}
