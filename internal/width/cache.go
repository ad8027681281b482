package width

// Cache memoizes a column Model against a content version token. The model is
// rebuilt only when the version passed to Get differs from the cached one.
type Cache[T any] struct {
	version uint64
	model   Model[T]
	err     error
	built   bool
	changed bool
}

// Get returns the model for version, building content if the version has
// changed since the last call.
func (c *Cache[T]) Get(version uint64, content Content[T]) (Model[T], error) {
	if c.built && c.version == version {
		c.changed = false
		return c.model, c.err
	}
	c.model, c.err = Build(content)
	c.version = version
	c.built = true
	c.changed = true
	return c.model, c.err
}

// Changed reports whether the last call to Get rebuilt the model.
func (c *Cache[T]) Changed() bool { return c.changed }

// Version returns the version of the cached model.
func (c *Cache[T]) Version() uint64 { return c.version }
