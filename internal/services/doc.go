// Package services holds the business logic behind the dashboard API.
//
// DashboardService owns the session dataset and recomputes every view
// (summary, derived table, correlation matrix, exchange statistics,
// trendlines) from the raw observations on each request. Nothing derived
// is cached, so a dataset swap via upload or reset is immediately
// reflected in all views.
package services
