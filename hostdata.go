package claymark

// IterationContext is threaded through a host data-access lookup when the
// interpreter is inside a `<list>` body, so a host can resolve a key
// relative to the current index (spec §4.12).
type IterationContext struct {
	Source string
	Index  int
}

// HostDataSource bundles the six typed lookups the markup interpreter is
// allowed to call — the only seam through which application state reaches
// the core (spec §4.12). Each returns an optional value: (_, false) means
// "not present", distinct from a present zero value.
type HostDataSource interface {
	GetBool(key string, iter *IterationContext) (bool, bool)
	GetNumeric(key string, iter *IterationContext) (float64, bool)
	GetText(key string, iter *IterationContext) (string, bool)
	GetColor(key string, iter *IterationContext) (Color, bool)
	GetImage(key string, iter *IterationContext) (ImageRef, bool)
	GetEvent(key string, iter *IterationContext) (Event, bool)
	GetListLength(source string) int
}

// ImageRef is an opaque host-resolved image handle plus its source
// dimensions, carried unchanged onto an Image render command (spec §4.8).
type ImageRef struct {
	Handle  any
	SrcW    int32
	SrcH    int32
}

// Event is an application-defined payload emitted by a `<clicked emit="…">`
// guard onto the per-frame event vector.
type Event struct {
	Name    string
	Payload any
}
