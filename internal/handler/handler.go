// Package handler provides HTTP request handlers for the item API.
package handler

// Version is the application version.
const Version = "1.0.0"

// Item API paths.
const (
	RootPath       = "/"
	ItemsPath      = "/api/v1/items"
	ItemPathPrefix = ItemsPath + "/"
	itemRouteName  = ItemsPath + "/{id}"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Status   string `json:"status"`
	Items    int    `json:"items"`
	Capacity int    `json:"capacity"`
}
