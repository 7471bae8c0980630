// SPDX-License-Identifier: MIT

// Package connector drives a likelihood on behalf of a sampler.
//
// One Evaluate call runs the full step cycle: check required parameters,
// update the likelihood, prepare the modeling tools with the sampler's
// cosmology, compute the log-likelihood, collect derived parameters and
// reset. Calls are serialized; each run gets a UUID that tags its logs and
// spans, and evaluations are counted in Prometheus collectors.
package connector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/likelihood"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
	"github.com/katalvlaran/lvlike/updatable"
)

// ErrNilLikelihood is returned by New for a nil likelihood.
var ErrNilLikelihood = errors.New("connector: nil likelihood")

const (
	opNew      = "connector.New"
	opEvaluate = "connector.Evaluate"
	opCompute  = "connector.ComputeLoglike"
)

// Result is the outcome of one successful evaluation.
type Result struct {
	RunID   string
	Step    uint64
	Loglike float64
	// Chisq is set for Gaussian-family likelihoods (HasChisq).
	Chisq    float64
	HasChisq bool
	Derived  parameters.DerivedCollection
}

// Connector owns a read likelihood and its modeling tools.
type Connector struct {
	mu       sync.Mutex
	like     likelihood.Likelihood
	tools    *modeling.Tools
	required parameters.RequiredParameters

	log     *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	runID   uuid.UUID
	step    uint64
}

// New reads like from src and returns a ready connector.
//
// Errors:
//   - ErrNilLikelihood.
//   - Everything like.Read returns (likelihood.ErrData, likelihood.ErrDimension,
//     likelihood.ErrAlreadyRead).
func New(like likelihood.Likelihood, src dataset.Source, opts ...Option) (*Connector, error) {
	if updatable.IsNil(like) {
		return nil, ErrNilLikelihood
	}
	o := gatherOptions(opts...)
	if err := like.Read(src); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	c := &Connector{
		like:     like,
		tools:    o.tools,
		required: like.RequiredParameters(),
		metrics:  NewMetrics(o.registry),
		tracer:   o.tracer.Tracer(TracerName),
		runID:    uuid.New(),
	}
	c.log = o.logger.With(slog.String("run_id", c.runID.String()))
	c.log.Info("connector ready",
		slog.Int("required", c.required.Len()),
		slog.String("parameters", c.required.String()),
	)

	return c, nil
}

// RunID identifies this connector in logs, spans and results.
func (c *Connector) RunID() string { return c.runID.String() }

// Requirements returns the parameter names every Evaluate call must supply.
func (c *Connector) Requirements() parameters.RequiredParameters { return c.required }

// Likelihood returns the driven likelihood.
func (c *Connector) Likelihood() likelihood.Likelihood { return c.like }

// Evaluate runs one step cycle. The likelihood and tools are reset before
// returning, whether or not the step succeeded.
//
// Errors:
//   - the context error when ctx is done before the step starts;
//   - likelihood.ErrParameter for missing or invalid parameters;
//   - modeling.ErrNilCosmology;
//   - everything ComputeLoglike returns.
//
// Use likelihood.IsRejection to decide between rejecting the point and
// aborting the run.
func (c *Connector) Evaluate(ctx context.Context, cosmo modeling.Cosmology, params parameters.ParamsMap) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", opEvaluate, err)
	}
	ctx, span := c.tracer.Start(ctx, opEvaluate, trace.WithAttributes(
		attribute.String("lvlike.run_id", c.runID.String()),
	))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.step++
	span.SetAttributes(attribute.Int64("lvlike.step", int64(c.step)))
	start := time.Now()
	res, err := c.evaluate(ctx, cosmo, params)
	elapsed := time.Since(start)

	outcome := OutcomeOK
	switch {
	case err == nil:
		span.SetAttributes(attribute.Float64("lvlike.loglike", res.Loglike))
		span.SetStatus(codes.Ok, "")
		c.log.Debug("evaluated",
			slog.Uint64("step", c.step),
			slog.Float64("loglike", res.Loglike),
			slog.Duration("elapsed", elapsed),
		)
	case likelihood.IsRejection(err):
		outcome = OutcomeRejected
		span.AddEvent("rejected", trace.WithAttributes(attribute.String("reason", err.Error())))
		c.log.Debug("point rejected", slog.Uint64("step", c.step), slog.Any("err", err))
	default:
		outcome = OutcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Error("evaluation failed", slog.Uint64("step", c.step), slog.Any("err", err))
	}
	c.metrics.observe(outcome, elapsed.Seconds(), res.Loglike)
	if err != nil {
		return Result{}, fmt.Errorf("%s: step %d: %w", opEvaluate, c.step, err)
	}
	res.RunID, res.Step = c.runID.String(), c.step

	return res, nil
}

// evaluate runs the stages of one step. The likelihood computation gets its
// own span, a child of the evaluation span carried by ctx.
func (c *Connector) evaluate(ctx context.Context, cosmo modeling.Cosmology, params parameters.ParamsMap) (Result, error) {
	defer c.tools.Reset()
	defer c.like.Reset()

	if err := c.required.Validate(params); err != nil {
		return Result{}, err
	}
	if err := c.like.Update(params); err != nil {
		return Result{}, err
	}
	if err := c.tools.Prepare(cosmo); err != nil {
		return Result{}, err
	}
	_, span := c.tracer.Start(ctx, opCompute)
	loglike, err := c.like.ComputeLoglike(c.tools)
	span.End()
	if err != nil {
		return Result{}, err
	}
	derived, err := c.like.DerivedParameters()
	if err != nil {
		return Result{}, err
	}

	res := Result{Loglike: loglike, Derived: derived}
	if g, ok := c.like.(likelihood.Gaussian); ok {
		res.Chisq, res.HasChisq = g.Family().LastChisq()
	}

	return res, nil
}
