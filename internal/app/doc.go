// Package app wires configuration, logging, metrics, the dashboard
// service and the HTTP router into a runnable application with graceful
// shutdown.
package app
