package assist

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ASSIST")

var (
	CodeMissingPosition = ErrRegistry.Register("MISSING_POSITION", errx.TypeValidation, http.StatusBadRequest, "Please enter a position to generate text")
	CodeUnknownKind     = ErrRegistry.Register("UNKNOWN_KIND", errx.TypeValidation, http.StatusBadRequest, "Unknown draft kind")
	CodeGenerationFail  = ErrRegistry.Register("GENERATION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate text")
	CodeUnparseableTags = ErrRegistry.Register("UNPARSEABLE_TAGS", errx.TypeExternal, http.StatusBadGateway, "Failed to generate tags")
	CodeUnavailable     = ErrRegistry.Register("UNAVAILABLE", errx.TypeBusiness, http.StatusServiceUnavailable, "Text generation is not configured")
)

func ErrMissingPosition() *errx.Error {
	return ErrRegistry.New(CodeMissingPosition)
}

func ErrUnknownKind() *errx.Error {
	return ErrRegistry.New(CodeUnknownKind)
}

func ErrGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeGenerationFail)
}

func ErrUnparseableTags() *errx.Error {
	return ErrRegistry.New(CodeUnparseableTags)
}

func ErrUnavailable() *errx.Error {
	return ErrRegistry.New(CodeUnavailable)
}
