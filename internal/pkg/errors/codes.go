package errors

import "net/http"

var (
	ErrParkingSpotNotFound = New(
		"PARKING_SPOT_NOT_FOUND",
		"Parking spot not found",
		http.StatusNotFound,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"Route not found",
		http.StatusNotFound,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrCountryNotFound = New(
		"COUNTRY_NOT_FOUND",
		"Country not found",
		http.StatusNotFound,
	)

	ErrNoRouteFound = New(
		"NO_ROUTE_FOUND",
		"No route exists between the given points",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidReview = New(
		"INVALID_REVIEW",
		"Every rating must be between 1 and 5",
		http.StatusBadRequest,
	)

	ErrInvalidOccupancyStatus = New(
		"INVALID_OCCUPANCY_STATUS",
		"Status must be GREEN, YELLOW, RED or UNKNOWN",
		http.StatusBadRequest,
	)

	ErrInvalidTruckProfile = New(
		"INVALID_TRUCK_PROFILE",
		"Please complete the truck profile (length, width, height, weight)",
		http.StatusBadRequest,
	)

	ErrInvalidLocation = New(
		"INVALID_LOCATION",
		"Location needs a name and a type of COMPANY, PRIVATE, FUEL or OTHER",
		http.StatusBadRequest,
	)

	ErrInvalidPolyline = New(
		"INVALID_POLYLINE",
		"Malformed encoded polyline",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Sign in required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Not allowed",
		http.StatusForbidden,
	)

	ErrRoutingUnavailable = New(
		"ROUTING_UNAVAILABLE",
		"Route calculation failed, please try again",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
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
