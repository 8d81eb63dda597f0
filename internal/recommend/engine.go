// Motorgraph - Car Recommendation and Comparison Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/motorgraph

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Engine runs the filter -> score -> rank pipeline. It holds only
// configuration and a logger, so a single Engine is safe for concurrent
// use; all per-request state is local to a call.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Recommend runs the full pipeline for one request and returns the ranked
// top-K cars. The profile is validated first (*InvalidProfileError), and a
// hard-mode request that excludes every car returns *EmptyResultError with
// the soft-mode profile as the suggested recovery. Calling Recommend twice
// with the identical catalog and profile yields bit-identical output.
func (e *Engine) Recommend(ctx context.Context, cat *Catalog, req Request) (*Response, error) {
	start := time.Now()
	logger := e.requestLogger(req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Profile.Validate(); err != nil {
		logger.Warn().Err(err).Msg("rejected invalid profile")
		return nil, err
	}

	k := e.clampK(req.K)

	set, err := filterCatalog(cat, req.Profile, e.config)
	if err != nil {
		logger.Info().
			Int("catalog_size", cat.Len()).
			Msg("hard filtering excluded every car")
		return nil, err
	}

	scored := scoreCandidates(set, req.Profile)
	cars := topN(Rank(scored), k)

	resp := &Response{
		Cars: cars,
		Metadata: ResponseMetadata{
			RequestID:      req.RequestID,
			Mode:           req.Profile.Mode.String(),
			CatalogSize:    cat.Len(),
			CandidateCount: len(scored),
			Returned:       len(cars),
			LatencyMS:      float64(time.Since(start).Microseconds()) / 1000.0,
			GeneratedAt:    time.Now().UTC(),
		},
	}

	logger.Debug().
		Int("candidates", len(scored)).
		Int("returned", len(cars)).
		Float64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// Compare reconstructs the scored set for the profile and builds the
// comparison table for the selected identifiers, preserving their order.
// Identifiers that did not survive the profile's filtering are unknown to
// the scored set and yield *UnknownIdentifierError.
func (e *Engine) Compare(ctx context.Context, cat *Catalog, profile PreferenceProfile, ids []string) (*ComparisonTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	set, err := filterCatalog(cat, profile, e.config)
	if err != nil {
		return nil, err
	}

	table, err := Compare(scoreCandidates(set, profile), ids)
	if err != nil {
		e.logger.Warn().Err(err).Strs("ids", ids).Msg("comparison rejected")
		return nil, err
	}
	return table, nil
}

// requestLogger returns a logger carrying the request's correlation fields.
func (e *Engine) requestLogger(req Request) zerolog.Logger {
	logger := e.logger
	if req.RequestID != "" {
		logger = logger.With().Str("request_id", req.RequestID).Logger()
	}
	return logger.With().
		Str("mode", req.Profile.Mode.String()).
		Logger()
}

// clampK resolves the requested result count against the configured
// default and cap.
func (e *Engine) clampK(k int) int {
	if k <= 0 {
		return e.config.DefaultK
	}
	if k > e.config.MaxK {
		return e.config.MaxK
	}
	return k
}
