package xlgrid

import "log/slog"

// Options holds configuration for a Grid.
type Options struct {
	geometry             GeometryProvider
	events               EventSink
	visuals              VisualSink
	selector             ItemSelector
	allowsMultiSelection bool
	rowSelection         bool
	crossSelection       bool
	userTouchCells       bool
	logger               *slog.Logger
}

func defaultOptions() *Options {
	return &Options{
		events:         NopEventSink{},
		visuals:        noVisuals{},
		rowSelection:   true,
		userTouchCells: true,
		logger:         slog.New(slog.DiscardHandler),
	}
}

// Option configures a Grid.
type Option func(*Options)

// WithGeometry sets the geometry provider used for width queries.
func WithGeometry(g GeometryProvider) Option {
	return func(o *Options) { o.geometry = g }
}

// WithEventSink sets the receiver of user-driven selection events.
func WithEventSink(s EventSink) Option {
	return func(o *Options) {
		if s != nil {
			o.events = s
		}
	}
}

// WithVisualSink sets the lookup for on-screen elements.
func WithVisualSink(v VisualSink) Option {
	return func(o *Options) {
		if v != nil {
			o.visuals = v
		}
	}
}

// WithItemSelector sets the substrate's cell selection primitive (default: a new ItemSet).
func WithItemSelector(s ItemSelector) Option {
	return func(o *Options) { o.selector = s }
}

// WithMultipleSelection allows several cells to stay selected (default: false).
func WithMultipleSelection(allow bool) Option {
	return func(o *Options) { o.allowsMultiSelection = allow }
}

// WithRowSelection makes section header/footer selection cover the whole row (default: true).
func WithRowSelection(enabled bool) Option {
	return func(o *Options) { o.rowSelection = enabled }
}

// WithCrossSelection makes a cell selection also select its column (default: false).
func WithCrossSelection(enabled bool) Option {
	return func(o *Options) { o.crossSelection = enabled }
}

// WithUserTouchCells controls whether user taps may select cells (default: true).
func WithUserTouchCells(enabled bool) Option {
	return func(o *Options) { o.userTouchCells = enabled }
}

// WithLogger sets the structured logger (default: discard).
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}
