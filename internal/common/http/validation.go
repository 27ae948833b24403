package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs validator tags over a request DTO and converts the
// first failure into a VALIDATION_ERROR domain error with a field-level
// message.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return commonerrors.NewDomainError(
			CodeValidationError,
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			fmt.Sprintf("%s failed validation on '%s'", strings.ToLower(fe.Field()), fe.Tag()),
		)
	}

	return commonerrors.ErrValidationFailed.WithCause(err)
}

// ParseTodoIDFromPath extracts the numeric id from /api/v1/todos/{id}.
func ParseTodoIDFromPath(path, prefix string) (int64, error) {
	remaining := strings.TrimPrefix(path, prefix)
	remaining = strings.Trim(remaining, "/")
	if remaining == "" || strings.Contains(remaining, "/") {
		return 0, commonerrors.NewDomainError(
			CodeInvalidTodoID,
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			"todo id is required",
		)
	}

	id, err := strconv.ParseInt(remaining, 10, 64)
	if err != nil || id <= 0 {
		return 0, commonerrors.NewDomainError(
			CodeInvalidTodoID,
			commonerrors.CategoryValidation,
			http.StatusBadRequest,
			"todo id must be a positive integer",
		)
	}

	return id, nil
}
