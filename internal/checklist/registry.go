package checklist

// Check is one registered check mark, attributed to the chapter where
// it was first seen.
type Check struct {
	ID          string
	Description string
}

// ChapterChecks groups the checks found in a single chapter.
type ChapterChecks struct {
	Chapter string
	Path    string
	Checks  []Check
}

// Registry accumulates checks during a single traversal, keeping
// first-seen document order both across chapters and within each
// chapter. Duplicate identifiers are dropped (first-seen-wins) so a
// copy-pasted check mark never corrupts the index.
type Registry struct {
	seen    map[string]struct{}
	order   []*ChapterChecks
	buckets map[string]*ChapterChecks
}

// NewRegistry returns an empty registry. One registry serves exactly
// one preprocessing pass.
func NewRegistry() *Registry {
	return &Registry{
		seen:    make(map[string]struct{}),
		buckets: make(map[string]*ChapterChecks),
	}
}

// Record inserts a check under the given chapter. It reports false
// when the identifier was already registered, in which case nothing
// changes.
func (r *Registry) Record(id, description, chapter, path string) bool {
	if _, dup := r.seen[id]; dup {
		return false
	}
	r.seen[id] = struct{}{}

	key := path + "\x00" + chapter
	bucket, ok := r.buckets[key]
	if !ok {
		bucket = &ChapterChecks{Chapter: chapter, Path: path}
		r.buckets[key] = bucket
		r.order = append(r.order, bucket)
	}
	bucket.Checks = append(bucket.Checks, Check{ID: id, Description: description})
	return true
}

// Len returns the number of registered checks.
func (r *Registry) Len() int {
	return len(r.seen)
}

// Snapshot returns the chapter buckets in document order: chapters by
// first check encountered, checks within a chapter in encounter order.
func (r *Registry) Snapshot() []ChapterChecks {
	out := make([]ChapterChecks, len(r.order))
	for i, bucket := range r.order {
		out[i] = *bucket
	}
	return out
}
