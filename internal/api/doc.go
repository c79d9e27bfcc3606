// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the user and card services, translating HTTP concerns to business
// operations.
//
// Every failure is written by HandleAPIError, which maps service and store
// errors to status codes and never exposes internal detail on 5xx responses.
package api
