package job

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB")

var (
	CodeJobNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeUnauthorized      = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized")
	CodeInvalidTitle      = ErrRegistry.Register("INVALID_TITLE", errx.TypeValidation, http.StatusBadRequest, "Job title is required")
	CodeInvalidWorkMode   = ErrRegistry.Register("INVALID_WORK_MODE", errx.TypeValidation, http.StatusBadRequest, "Invalid work mode")
	CodeInvalidExperience = ErrRegistry.Register("INVALID_EXPERIENCE", errx.TypeValidation, http.StatusBadRequest, "Invalid years of experience bracket")
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid job request")
	CodeNotSaved          = ErrRegistry.Register("NOT_SAVED", errx.TypeNotFound, http.StatusNotFound, "Job is not in the saved collection")
	CodeCompanyNotOwned   = ErrRegistry.Register("COMPANY_NOT_OWNED", errx.TypeValidation, http.StatusBadRequest, "Company does not belong to the user")
)

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrInvalidTitle() *errx.Error {
	return ErrRegistry.New(CodeInvalidTitle)
}

func ErrInvalidWorkMode() *errx.Error {
	return ErrRegistry.New(CodeInvalidWorkMode)
}

func ErrInvalidExperience() *errx.Error {
	return ErrRegistry.New(CodeInvalidExperience)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNotSaved() *errx.Error {
	return ErrRegistry.New(CodeNotSaved)
}

func ErrCompanyNotOwned() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotOwned)
}
