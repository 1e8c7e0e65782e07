// Package metrics counts escape-hatch matches per pattern, split into source
// and test scopes, optionally per package.
package metrics

import "sync"

// Scoped is the stable JSON shape {"source": {...}, "test": {...}}.
type Scoped struct {
	Source map[string]int `json:"source"`
	Test   map[string]int `json:"test"`
}

type counts struct {
	source map[string]int
	test   map[string]int
}

func newCounts() *counts {
	return &counts{source: make(map[string]int), test: make(map[string]int)}
}

func (c *counts) add(name string, test bool, n int) {
	if test {
		c.test[name] += n
	} else {
		c.source[name] += n
	}
}

func (c *counts) scoped(names []string) Scoped {
	s := Scoped{Source: make(map[string]int, len(names)), Test: make(map[string]int, len(names))}
	for _, n := range names {
		s.Source[n] = c.source[n]
		s.Test[n] = c.test[n]
	}
	return s
}

// Aggregator は並行利用可能な集計器です。ワーカーごとに New して最後に Merge します。
type Aggregator struct {
	mu       sync.Mutex
	total    *counts
	packages map[string]*counts
}

func New() *Aggregator {
	return &Aggregator{total: newCounts(), packages: make(map[string]*counts)}
}

// Increment counts one match of name.
func (a *Aggregator) Increment(name string, test bool) {
	a.mu.Lock()
	a.total.add(name, test, 1)
	a.mu.Unlock()
}

// IncrementPackage counts one match of name for pkg.
func (a *Aggregator) IncrementPackage(pkg, name string, test bool) {
	a.mu.Lock()
	p, ok := a.packages[pkg]
	if !ok {
		p = newCounts()
		a.packages[pkg] = p
	}
	p.add(name, test, 1)
	a.mu.Unlock()
}

// SourceCount returns the source-scope count of name.
func (a *Aggregator) SourceCount(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total.source[name]
}

// TestCount returns the test-scope count of name.
func (a *Aggregator) TestCount(name string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total.test[name]
}

// Merge adds every count of other into a. other must not be a.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil || other == a {
		return
	}
	other.mu.Lock()
	defer other.mu.Unlock()
	a.mu.Lock()
	defer a.mu.Unlock()
	for n, v := range other.total.source {
		a.total.add(n, false, v)
	}
	for n, v := range other.total.test {
		a.total.add(n, true, v)
	}
	for pkg, oc := range other.packages {
		p, ok := a.packages[pkg]
		if !ok {
			p = newCounts()
			a.packages[pkg] = p
		}
		for n, v := range oc.source {
			p.add(n, false, v)
		}
		for n, v := range oc.test {
			p.add(n, true, v)
		}
	}
}

// ToJSON returns counts for every name in both scopes, zero-filled.
func (a *Aggregator) ToJSON(names []string) Scoped {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total.scoped(names)
}

// ToByPackage returns nil when no package increment ever happened.
func (a *Aggregator) ToByPackage(names []string) map[string]Scoped {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.packages) == 0 {
		return nil
	}
	out := make(map[string]Scoped, len(a.packages))
	for pkg, c := range a.packages {
		out[pkg] = c.scoped(names)
	}
	return out
}
