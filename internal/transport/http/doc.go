// Package http implements the HTTP request handlers for the InsightFlow
// service. It is a thin layer between transport and business logic: handlers
// parse requests, delegate to the service layer, and translate service errors
// into RFC 7807 Problem Details responses.
//
// # Request Flow
//
//	HTTP Request → Chi Router → Middleware → Handler → Service → Store
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// Each handler exposes a Routes() chi.Router mounted by the application,
// and receives its service plus an *errors.ErrorHandler for consistent
// error responses.
package http
