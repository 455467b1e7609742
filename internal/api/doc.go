// Package api serves the guestbook over HTTP: the server-rendered guest list
// and sign form, the OpenID Connect login routes, and the health check.
// Handlers translate HTTP concerns into service calls and map service errors
// to status codes without leaking internal details.
package api
