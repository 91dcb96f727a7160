// Package http provides the HTTP transport layer for the dashboard API.
//
// Handlers are thin: they parse and validate query parameters, delegate to
// the service layer, and render responses with go-chi/render. All errors
// flow through the shared ErrorHandler so clients always receive the
// standard error envelope.
//
// Routes are mounted by the app package:
//
//	/api/dashboard/bounds         dataset source and date bounds
//	/api/dashboard/summary        headline inflation metrics
//	/api/dashboard/table          raw or derived monthly table
//	/api/dashboard/correlation    Pearson correlation matrix
//	/api/dashboard/exchange-stats exchange rate statistics
//	/api/dashboard/trendlines     OLS trendlines for the scatter views
//	/api/dashboard/download       CSV download of the current view
//	/api/dashboard/upload         replace the session dataset
//	/api/dashboard/reset          restore the generated sample dataset
package http
