// ABOUTME: functional options for Slice: ellipsis string and ambiguous-width convention
// ABOUTME: mirrors the small-options-struct idiom used by the teacher's provider constructors

package ansislice

// config holds the resolved option values for a single Slice call.
type config struct {
	ellipsis          string
	ambiguousIsNarrow bool
}

// Option configures a Slice call. See WithEllipsis and WithAmbiguousWide.
type Option func(*config)

// WithEllipsis sets the string appended (and/or prepended) when the slice
// cuts off content at the start and/or end of the window. Default: no
// ellipsis.
func WithEllipsis(s string) Option {
	return func(c *config) { c.ellipsis = s }
}

// WithAmbiguousWide treats East-Asian-Ambiguous codepoints as width 2 instead
// of the default width 1 (spec.md §6's ambiguous_is_narrow, inverted for
// ergonomic call sites: most callers who reach for this option want wide).
func WithAmbiguousWide() Option {
	return func(c *config) { c.ambiguousIsNarrow = false }
}

func resolve(opts []Option) config {
	c := config{ambiguousIsNarrow: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
