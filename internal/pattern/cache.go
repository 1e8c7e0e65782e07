package pattern

import "sync"

// Cache はパターン文字列をキーにコンパイル結果を保持します。1 回の実行につき 1 つ作成します。
type Cache struct {
	mu       sync.Mutex
	compiled map[string]*Compiled
	failed   map[string]error
}

func NewCache() *Cache {
	return &Cache{
		compiled: make(map[string]*Compiled),
		failed:   make(map[string]error),
	}
}

// Compile returns the cached matcher for spec, compiling it on first use.
// Failures are cached too, so a bad pattern is reported with the same error every time.
func (c *Cache) Compile(spec string) (*Compiled, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.compiled[spec]; ok {
		return m, nil
	}
	if err, ok := c.failed[spec]; ok {
		return nil, err
	}
	m, err := Compile(spec)
	if err != nil {
		c.failed[spec] = err
		return nil, err
	}
	c.compiled[spec] = m
	return m, nil
}

// Len reports the number of successfully compiled patterns.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.compiled)
}
