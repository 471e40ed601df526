// Package codegen orchestrates a generation run: it selects the protocol,
// discovers and merges decorators, builds the symbol resolution chain, and
// drives the two-phase visitor that produces the artifact set.
//
// A run is deterministic end to end: identical graph, settings, and decorator
// set produce byte-identical artifacts. Fatal errors discard the entire run;
// non-fatal anomalies ride alongside the result as diagnostics.
package codegen

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"

	"github.com/oxidegen/oxidegen/codegen/decor"
	"github.com/oxidegen/oxidegen/codegen/protocol"
	"github.com/oxidegen/oxidegen/codegen/pybind"
	"github.com/oxidegen/oxidegen/codegen/rust"
	"github.com/oxidegen/oxidegen/codegen/symbols"
	"github.com/oxidegen/oxidegen/diag"
	"github.com/oxidegen/oxidegen/model"
)

// Options supplies the registries and sinks of a run. The zero value selects
// the compiled-in defaults.
type Options struct {
	// Decorators is the decorator registry; nil selects DefaultDecorators.
	Decorators *decor.Registry
	// Extra decorators registered for this run only, on top of the registry.
	// Duplicate names fail the run with a ConfigurationError.
	Extra []decor.Decorator
	// Protocols is the protocol registry; nil selects DefaultProtocols.
	Protocols *protocol.Registry
	// Sink additionally receives diagnostics as they are produced; the
	// result always carries the full list regardless.
	Sink diag.Sink
}

// DefaultDecorators returns the compiled-in decorator registry: the baseline
// config decorator plus the optional Python bindings bundle.
func DefaultDecorators() *decor.Registry {
	r := decor.NewRegistry()
	mustRegister(r.RegisterBuiltin(rust.ConfigDecorator()))
	mustRegister(r.Register(pybind.Decorator()))
	return r
}

// DefaultProtocols returns the compiled-in protocol registry.
func DefaultProtocols() *protocol.Registry {
	r := protocol.NewRegistry()
	mustRegister(r.Register(protocol.AWSJSON1{}))
	mustRegister(r.Register(protocol.RestJSON1{}))
	return r
}

// mustRegister guards the compiled-in registration tables; a failure there is
// a wiring defect, not a runtime condition.
func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// Generate runs the full pipeline over the graph and returns the artifact
// set with its diagnostics, or a single fatal error. Configuration problems
// (duplicate decorators, missing or ambiguous protocol, malformed reserved
// words) surface as *ConfigurationError before traversal; unsupported shapes
// abort traversal with *UnsupportedShapeError naming the shape.
func Generate(ctx context.Context, graph *model.Graph, settings *Settings, opts *Options) (*Result, error) {
	if graph == nil {
		return nil, configErr(nil, "no shape graph supplied")
	}
	if settings == nil {
		return nil, configErr(nil, "no settings supplied")
	}
	if opts == nil {
		opts = &Options{}
	}

	runID := uuid.NewString()
	ctx = log.With(ctx, log.KV{K: "run", V: runID})

	tracer := otel.Tracer("github.com/oxidegen/oxidegen/codegen")
	ctx, span := tracer.Start(ctx, "codegen.generate",
		trace.WithAttributes(attribute.String("service", settings.Service)))
	defer span.End()

	settings.applyDefaults()
	words, err := settings.validate()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service, ok := graph.Shape(model.ShapeID(settings.Service))
	if !ok {
		cfgErr := configErr(nil, "service shape %q not found in graph", settings.Service)
		span.SetStatus(codes.Error, cfgErr.Error())
		return nil, cfgErr
	}

	registry := opts.Decorators
	if registry == nil {
		registry = DefaultDecorators()
	}
	for _, d := range opts.Extra {
		if regErr := registry.Register(d); regErr != nil {
			cfgErr := configErr(regErr, "decorator registration failed")
			span.SetStatus(codes.Error, cfgErr.Error())
			return nil, cfgErr
		}
	}
	decorators, err := registry.Discover(settings.Decorators)
	if err != nil {
		cfgErr := configErr(err, "decorator discovery failed")
		span.SetStatus(codes.Error, cfgErr.Error())
		return nil, cfgErr
	}
	combined := decor.Combine(decorators)

	protocols := opts.Protocols
	if protocols == nil {
		protocols = DefaultProtocols()
	}
	proto, err := protocols.Select(service, model.TraitID(settings.Protocol))
	if err != nil {
		cfgErr := configErr(err, "protocol selection failed")
		span.SetStatus(codes.Error, cfgErr.Error())
		return nil, cfgErr
	}

	list := &diag.ListSink{}
	sink := diag.Sink(list)
	if opts.Sink != nil {
		sink = diag.Multi(opts.Sink, list)
	}
	report := diag.Bind(ctx, sink)

	chain := symbols.NewChain(
		rust.SymbolVisitor{Graph: graph},
		symbols.StreamingStage{Graph: graph},
		symbols.SensitiveStage{},
		symbols.NewReservedStage(words, renameSuffix, report),
	)

	v := &Visitor{
		graph:    graph,
		service:  service,
		symbols:  symbols.NewCache(chain),
		combined: combined,
		proto:    proto,
		settings: settings,
		report:   report,
	}
	arts, err := v.Run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("generation aborted: %w", err)
	}

	diags := list.Diagnostics()
	recordRunMetrics(ctx, arts, diags)
	log.Info(ctx, log.KV{K: "msg", V: "generation complete"},
		log.KV{K: "namespaces", V: len(arts.Namespaces())},
		log.KV{K: "diagnostics", V: len(diags)})

	return &Result{RunID: runID, Artifacts: arts, Diagnostics: diags}, nil
}

// recordRunMetrics publishes run counters through the global meter provider.
func recordRunMetrics(ctx context.Context, arts *ArtifactSet, diags []diag.Diagnostic) {
	meter := otel.Meter("github.com/oxidegen/oxidegen/codegen")
	if c, err := meter.Int64Counter("oxidegen.namespaces.generated"); err == nil {
		c.Add(ctx, int64(len(arts.Namespaces())))
	}
	if c, err := meter.Int64Counter("oxidegen.diagnostics.reported"); err == nil {
		c.Add(ctx, int64(len(diags)))
	}
}
