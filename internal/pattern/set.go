package pattern

// Spec は名前付きのパターン定義です。
type Spec struct {
	Name    string
	Pattern string
}

// Entry is a successfully compiled Spec.
type Entry struct {
	Name    string
	Matcher *Compiled
}

// Set holds the compiled patterns of one language, in declaration order.
type Set struct {
	Entries []Entry
}

// CompileAll compiles every spec through cache. Invalid patterns are left out of
// the set and returned as errors so the caller can warn and continue.
func CompileAll(cache *Cache, specs []Spec) (*Set, []error) {
	if cache == nil {
		cache = NewCache()
	}
	set := &Set{Entries: make([]Entry, 0, len(specs))}
	var errs []error
	for _, s := range specs {
		m, err := cache.Compile(s.Pattern)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.Entries = append(set.Entries, Entry{Name: s.Name, Matcher: m})
	}
	return set, errs
}

// Len returns the number of usable patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}
