package vg

// Encoding selects how a Path lays out its texel buffer.
type Encoding uint8

const (
	// EncodingFlat stores a single stream of move and quad texels.
	EncodingFlat Encoding = iota

	// EncodingBands stores a binary partition over y. Each node texel is
	// followed by its low subtree and then its high subtree, and every leaf is
	// a self-contained move/quad run, so a fragment visits only the segments
	// whose y range can cross its scanline.
	EncodingBands
)

// String returns the encoding name.
func (e Encoding) String() string {
	switch e {
	case EncodingFlat:
		return "flat"
	case EncodingBands:
		return "bands"
	default:
		return "unknown"
	}
}

// DefaultMaxLeafSegments is the leaf size at which band partitioning stops.
const DefaultMaxLeafSegments = 4

// maxBandDepth bounds the band partition depth.
const maxBandDepth = 8

// PathOption configures a PathBuilder.
//
// Example:
//
//	b := vg.NewPathBuilder(vg.WithEncoding(vg.EncodingBands))
type PathOption func(*pathOptions)

type pathOptions struct {
	encoding        Encoding
	maxLeafSegments int
}

func defaultPathOptions() pathOptions {
	return pathOptions{
		encoding:        EncodingFlat,
		maxLeafSegments: DefaultMaxLeafSegments,
	}
}

// WithEncoding selects the texel layout produced by Build.
func WithEncoding(e Encoding) PathOption {
	return func(o *pathOptions) {
		o.encoding = e
	}
}

// WithMaxLeafSegments sets the number of segments at which band partitioning
// stops. Values below 1 are ignored. Only used with EncodingBands.
func WithMaxLeafSegments(n int) PathOption {
	return func(o *pathOptions) {
		if n >= 1 {
			o.maxLeafSegments = n
		}
	}
}

// CacheOption configures a Cache.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	capacity int
	encoding Encoding
}

func defaultCacheOptions() cacheOptions {
	return cacheOptions{
		capacity: MaxArenaTexels,
		encoding: EncodingFlat,
	}
}

// WithArenaCapacity limits the curve arena to n texels. Values outside
// (0, MaxArenaTexels] are ignored. A smaller arena is useful when the backend
// allocates a smaller curve texture.
func WithArenaCapacity(n int) CacheOption {
	return func(o *cacheOptions) {
		if n > 0 && n <= MaxArenaTexels {
			o.capacity = n
		}
	}
}

// WithGlyphEncoding selects the encoding used for glyph and rectangle paths
// built by the cache.
func WithGlyphEncoding(e Encoding) CacheOption {
	return func(o *cacheOptions) {
		o.encoding = e
	}
}

// FrameOption configures a Frame.
type FrameOption func(*frameOptions)

type frameOptions struct {
	scale float32
}

func defaultFrameOptions() frameOptions {
	return frameOptions{scale: 1}
}

// WithScale sets the device pixel ratio. Draw positions are given in logical
// pixels and multiplied by scale before mapping to normalized device
// coordinates, so the frame width and height are in device pixels.
func WithScale(scale float32) FrameOption {
	return func(o *frameOptions) {
		if scale > 0 {
			o.scale = scale
		}
	}
}
