// Package api handles incoming HTTP requests, request validation and response
// formatting for the task endpoints. It adapts HTTP to the service layer and
// maps service errors to status codes without leaking internal details.
package api
