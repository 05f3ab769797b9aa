package profile

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("PROFILE")

var (
	CodeUnauthorized     = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized")
	CodeUserMismatch     = ErrRegistry.Register("USER_MISMATCH", errx.TypeAuthorization, http.StatusUnauthorized, "Cannot act on behalf of another user")
	CodeProfileNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeResumeNotFound   = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeMissingField     = ErrRegistry.Register("MISSING_FIELD", errx.TypeValidation, http.StatusBadRequest, "Missing required field")
	CodeInvalidEmail     = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email address")
	CodeResumeNotOwned   = ErrRegistry.Register("RESUME_NOT_OWNED", errx.TypeValidation, http.StatusBadRequest, "Resume does not belong to the applicant")
	CodeUnsupportedFile  = ErrRegistry.Register("UNSUPPORTED_FILE", errx.TypeValidation, http.StatusBadRequest, "Unsupported resume file type")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeJobNotApplicable = ErrRegistry.Register("JOB_NOT_APPLICABLE", errx.TypeNotFound, http.StatusNotFound, "Job not found or not accepting applications")
	CodeStorageFailure   = ErrRegistry.Register("STORAGE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Failed to store the application")
)

func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrUserMismatch() *errx.Error {
	return ErrRegistry.New(CodeUserMismatch)
}

func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrMissingField(field string) *errx.Error {
	return ErrRegistry.New(CodeMissingField).WithDetail("field", field)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrResumeNotOwned() *errx.Error {
	return ErrRegistry.New(CodeResumeNotOwned)
}

func ErrUnsupportedFile() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFile)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrJobNotApplicable() *errx.Error {
	return ErrRegistry.New(CodeJobNotApplicable)
}

func ErrStorageFailure() *errx.Error {
	return ErrRegistry.New(CodeStorageFailure)
}
