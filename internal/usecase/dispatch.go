package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sportsbridge/internal/domain"
)

// Dispatcher resolves a tool invocation to its spec and runs the request
// pipeline: build → execute → transform → normalize. It holds no per-call
// state; concurrent invocations share only the read-only provider config and
// the write-once spec repository.
type Dispatcher struct {
	repository SpecRepository
	builder    RequestBuilder
	executor   Executor
	normalizer Normalizer
	provider   domain.ProviderConfig
	logger     *slog.Logger
	tracer     trace.Tracer

	// now is injectable so date defaults are deterministic under test.
	now func() time.Time
}

// NewDispatcher creates a new Dispatcher for one provider.
func NewDispatcher(
	repo SpecRepository,
	builder RequestBuilder,
	executor Executor,
	normalizer Normalizer,
	provider domain.ProviderConfig,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		repository: repo,
		builder:    builder,
		executor:   executor,
		normalizer: normalizer,
		provider:   provider,
		logger:     logger.With("usecase", "Dispatch", slog.String("provider", provider.ID)),
		tracer:     otel.Tracer("sportsbridge/dispatch"),
		now:        time.Now,
	}
}

// Dispatch executes the named tool with the given arguments. Every failure
// past this boundary is recovered into NormalizedResult{Status: error}; the
// server process never terminates because one invocation went wrong.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, args map[string]any) domain.NormalizedResult {
	log := d.logger.With(
		slog.String("tool_name", toolName),
		slog.String("invocation_id", uuid.NewString()),
	)
	ctx, span := d.tracer.Start(ctx, "dispatch",
		trace.WithAttributes(attribute.String("tool.name", toolName)))
	defer span.End()

	result := d.dispatch(ctx, log, toolName, args)
	if result.Status == domain.StatusError {
		span.SetStatus(codes.Error, result.ErrorDetail)
		log.Warn("Tool invocation failed", slog.String("error_detail", result.ErrorDetail))
	} else {
		log.Info("Tool invocation succeeded")
	}
	return result
}

func (d *Dispatcher) dispatch(ctx context.Context, log *slog.Logger, toolName string, args map[string]any) domain.NormalizedResult {
	spec, err := d.repository.FindByName(ctx, toolName)
	if err != nil {
		return domain.ErrorResult(fmt.Sprintf("unknown tool: %s", toolName))
	}

	params, resolved, err := resolveParams(*spec, args, d.now)
	if err != nil {
		return domain.ErrorResult(errorDetail(err))
	}

	req, err := d.builder.Build(spec.PathTemplate, params, d.provider)
	if err != nil {
		return domain.ErrorResult(errorDetail(err))
	}
	log.Debug("Built upstream request", slog.String("path_template", spec.PathTemplate))

	_, body, err := d.executor.Execute(ctx, req)
	if err != nil {
		return domain.ErrorResult(errorDetail(err))
	}

	if spec.Transform != nil {
		transformed, err := spec.Transform(body, resolved)
		if err != nil {
			return domain.ErrorResult(errorDetail(&domain.NormalizationError{Err: err}))
		}
		if transformed != nil {
			body = transformed
		}
	}

	payload, err := d.normalizer.Normalize(body)
	if err != nil {
		return domain.ErrorResult(errorDetail(err))
	}
	return domain.OKResult(payload)
}

// resolveParams validates arguments against the spec and produces the string
// parameter map for the request builder plus the resolved argument map handed
// to transforms. Missing required names are collected in full, never reported
// one at a time.
func resolveParams(spec domain.ToolSpec, args map[string]any, now func() time.Time) (map[string]string, map[string]any, error) {
	var missing []string
	params := make(map[string]string)
	resolved := make(map[string]any, len(args))

	inPath := make(map[string]bool)
	for _, ph := range domain.Placeholders(spec.PathTemplate) {
		inPath[ph] = true
	}

	for _, p := range spec.Params {
		raw, present := args[p.Name]
		var value string
		switch {
		case present:
			v, err := stringify(p, raw)
			if err != nil {
				return nil, nil, err
			}
			if v == "" && p.Required {
				// An empty required value would vanish from the built URL
				// instead of failing; reject it here.
				return nil, nil, &domain.InvalidParameterError{Name: p.Name, Reason: "must not be empty"}
			}
			value = v
		case p.Required:
			missing = append(missing, p.Name)
			continue
		case p.Default != "":
			value = applyDefault(p, now)
		case inPath[p.Name]:
			// An absent optional path parameter drops its segment; the
			// request builder erases empty segments from the final URL.
		default:
			continue
		}

		resolved[p.Name] = value
		if p.Local {
			continue
		}
		if p.Type == domain.ParamDate {
			t, err := time.Parse("2006-01-02", value)
			if err != nil {
				return nil, nil, &domain.InvalidParameterError{Name: p.Name, Reason: "expected YYYY-MM-DD"}
			}
			params["year"] = fmt.Sprintf("%04d", t.Year())
			params["month"] = fmt.Sprintf("%02d", int(t.Month()))
			params["day"] = fmt.Sprintf("%02d", t.Day())
			continue
		}
		params[p.Name] = value
	}

	if len(missing) > 0 {
		return nil, nil, &domain.MissingParameterError{Names: missing}
	}
	return params, resolved, nil
}

// applyDefault resolves the dynamic defaults: "today" for dates and "current"
// (season year) for integers; anything else is taken literally.
func applyDefault(p domain.ParamSpec, now func() time.Time) string {
	switch {
	case p.Type == domain.ParamDate && p.Default == "today":
		return now().Format("2006-01-02")
	case p.Type == domain.ParamInteger && p.Default == "current":
		return strconv.Itoa(now().Year())
	default:
		return p.Default
	}
}

// stringify renders one argument value for URL use. JSON numbers arrive as
// float64; integral values must not pick up a ".0" suffix on the wire.
func stringify(p domain.ParamSpec, v any) (string, error) {
	switch value := v.(type) {
	case string:
		return value, nil
	case float64:
		if value != math.Trunc(value) && p.Type == domain.ParamInteger {
			return "", &domain.InvalidParameterError{Name: p.Name, Reason: "expected an integer"}
		}
		if value == math.Trunc(value) {
			return strconv.FormatInt(int64(value), 10), nil
		}
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(value), nil
	case bool:
		return strconv.FormatBool(value), nil
	default:
		return "", &domain.InvalidParameterError{Name: p.Name, Reason: fmt.Sprintf("unsupported value type %T", v)}
	}
}

// errorDetail converts a pipeline error into the ErrorDetail string surfaced
// to the host. Normalization errors present their cause directly ("invalid
// upstream response"), everything else its standard message.
func errorDetail(err error) string {
	var normErr *domain.NormalizationError
	if errors.As(err, &normErr) {
		return normErr.Err.Error()
	}
	return err.Error()
}
