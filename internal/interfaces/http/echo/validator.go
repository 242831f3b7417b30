package echo

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// fieldMessages maps field+tag to the message shown to clients. Keeping the
// wording here instead of scattered branches makes the copy reviewable in
// one place.
var fieldMessages = map[string]string{
	"Email.required":    "The Email field is required",
	"Email.email":       "The Email must be a valid email address",
	"Password.required": "The Password field is required",
	"Password.min":      "The Password must be at least 8 characters",
	"Name.required":     "The Name field is required",
	"Title.required":    "The Title field is required",
	"Token.required":    "The Token field is required",
	"Status.oneof":      "The Status must be 0 or 1",
	"Role.oneof":        "The Role must be 0 or 1",
}

type requestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New()}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if verrs, ok = err.(validator.ValidationErrors); !ok {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field() + "." + fe.Tag()
		msg, found := fieldMessages[key]
		if !found {
			msg = fmt.Sprintf("The %s field is invalid", fe.Field())
		}
		fields[strings.ToLower(fe.Field())] = msg
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, fields)
}
