package category

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CATEGORY")

var (
	CodeCategoryNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Category not found")
	CodeCategoryAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Category already exists")
	CodeInvalidName           = ErrRegistry.Register("INVALID_NAME", errx.TypeValidation, http.StatusBadRequest, "Category name is required")
)

func ErrCategoryNotFound() *errx.Error {
	return ErrRegistry.New(CodeCategoryNotFound)
}

func ErrCategoryAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeCategoryAlreadyExists)
}

func ErrInvalidName() *errx.Error {
	return ErrRegistry.New(CodeInvalidName)
}
