package errors

import "net/http"

var (
	ErrInvalidSelection = New(
		"INVALID_SELECTION",
		"Invalid station selection",
		http.StatusBadRequest,
	)

	ErrPastDate = New(
		"PAST_DATE",
		"Travel date cannot be in the past",
		http.StatusBadRequest,
	)

	ErrInsufficientSeats = New(
		"INSUFFICIENT_SEATS",
		"Not enough seats available",
		http.StatusConflict,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrDuplicateKey = New(
		"DUPLICATE_KEY",
		"Duplicate value for unique field",
		http.StatusConflict,
	)

	ErrStationNotFound = New(
		"STATION_NOT_FOUND",
		"Station not found",
		http.StatusBadRequest,
	)

	ErrSameStation = New(
		"SAME_STATION",
		"Source and destination cannot be the same",
		http.StatusBadRequest,
	)

	ErrPNRGenerationExhausted = New(
		"PNR_GENERATION_EXHAUSTED",
		"Failed to allocate a unique PNR",
		http.StatusInternalServerError,
	)

	ErrInUse = New(
		"IN_USE",
		"Resource is referenced by other records",
		http.StatusConflict,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		http.StatusUnauthorized,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"Storage operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
