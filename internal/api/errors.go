package api

import (
	"errors"   // Error unwrapping
	"net/http" // HTTP status codes

	"rental_gateway/internal/rental" // Typed backend errors
)

// GenericBackendError is shown when the backend is unreachable
const GenericBackendError = "Backend unavailable, please try again."

// errorStatus maps a backend call failure to the gateway's response
// status: rejections keep the backend status, transport errors become 502
func errorStatus(err error) int {
	var apiErr *rental.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode // Backend rejection passes through
	}
	return http.StatusBadGateway // Network/transport failure
}

// errorMessage surfaces a backend detail verbatim, or a generic message
// for transport failures
func errorMessage(err error) string {
	var apiErr *rental.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail // Human-readable backend message
	}
	return GenericBackendError
}
