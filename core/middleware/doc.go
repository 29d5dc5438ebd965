// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or Bearer token).
//   - rayid: assigns every request a RayID (reusing an incoming X-Ray-ID),
//     stores it in the context locals and echoes it in the response headers.
//
// These middleware components are registered globally in the start command.
package middleware
