// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

// Package api implements the HTTP surface of the recommendation engine.
//
// Routes (all JSON, wrapped in a common response envelope):
//
//	POST /api/v1/recommend     - rank cars for a preference profile
//	POST /api/v1/compare       - side-by-side comparison of selected cars
//	GET  /api/v1/cars          - list the loaded catalog
//	GET  /api/v1/cars/{id}     - fetch a single catalog record
//	GET  /api/v1/health/live   - liveness probe
//	GET  /api/v1/health/ready  - readiness probe
//	GET  /metrics              - Prometheus metrics
//
// Engine errors map to HTTP statuses: invalid profiles are 400, unknown
// car identifiers are 404, an empty result set is 422 and carries a
// relaxed profile the client can retry with.
//
// The router is built with chi and carries request-ID propagation,
// security headers, CORS, per-route rate limits and Prometheus
// instrumentation as middleware.
package api
