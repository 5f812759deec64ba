package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/v1"

// Reserved query parameters of the GET list form; every other parameter is a filter key.
const (
	paramPage          = "page"
	paramSize          = "size"
	paramSearch        = "search"
	paramSortBy        = "sortBy"
	paramSortDirection = "sortDirection"
)
