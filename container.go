package star

import "fmt"

// container is the insertion-ordered tag/value map underlying DataExtent,
// DataBlock, and SaveFrame.
type container struct {
	kind  string
	name  string
	keys  []string
	items map[string]any
}

func newContainer(kind, name string) container {
	return container{kind: kind, name: name, items: make(map[string]any)}
}

func (c *container) String() string {
	return fmt.Sprintf("%s(name=%s)", c.kind, c.name)
}

// Name returns the container name: the block or saveframe name as parsed,
// or as set by the caller.
func (c *container) Name() string { return c.name }

// SetName renames the container. The key it is registered under in its
// parent does not change.
func (c *container) SetName(name string) { c.name = name }

// AddItem adds a tag/value pair. Adding a tag that is already present is
// an error, whatever the values are.
func (c *container) AddItem(tag string, value any) error {
	if _, ok := c.items[tag]; ok {
		return fmt.Errorf("%s: duplicate tag %s", c, tag)
	}
	c.keys = append(c.keys, tag)
	c.items[tag] = value
	return nil
}

// Set adds the tag/value pair, replacing any existing value for the tag
// in place.
func (c *container) Set(tag string, value any) {
	if _, ok := c.items[tag]; !ok {
		c.keys = append(c.keys, tag)
	}
	c.items[tag] = value
}

// Get returns the value for tag and whether the tag is present.
func (c *container) Get(tag string) (any, bool) {
	v, ok := c.items[tag]
	return v, ok
}

// Item returns the value for tag, or nil if the tag is absent.
func (c *container) Item(tag string) any { return c.items[tag] }

// Has reports whether the tag is present.
func (c *container) Has(tag string) bool {
	_, ok := c.items[tag]
	return ok
}

// Keys returns the tags in insertion order.
func (c *container) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Len returns the number of entries.
func (c *container) Len() int { return len(c.keys) }

// Rename changes the key of an entry in place, keeping its position.
// Renaming a missing tag or renaming onto an existing tag is an error.
func (c *container) Rename(oldTag, newTag string) error {
	if oldTag == newTag {
		return nil
	}
	v, ok := c.items[oldTag]
	if !ok {
		return fmt.Errorf("%s: no entry named %s", c, oldTag)
	}
	if _, ok := c.items[newTag]; ok {
		return fmt.Errorf("%s: duplicate tag %s", c, newTag)
	}
	delete(c.items, oldTag)
	c.items[newTag] = v
	for i, k := range c.keys {
		if k == oldTag {
			c.keys[i] = newTag
			break
		}
	}
	return nil
}

// Remove deletes the tag and reports whether it was present. Removing a
// loop tag removes that one key only; the loop stays registered under its
// other columns.
func (c *container) Remove(tag string) bool {
	if _, ok := c.items[tag]; !ok {
		return false
	}
	delete(c.items, tag)
	for i, k := range c.keys {
		if k == tag {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// MultiColumnValues returns the values for columns as rows, whether the
// columns live in a loop or are single items. Columns matching a single
// loop (or nothing) return the loop rows. Columns matching only plain
// items return one synthesized row, with nil for absent columns. If no
// column matches, the result is nil. Columns spanning a loop and anything
// else are an error.
func (c *container) MultiColumnValues(columns ...string) ([]Row, error) {
	var loop *Loop
	multi := false
	hasItem := false
	row := make(Row, len(columns))
	for _, col := range columns {
		v := c.items[col]
		row[col] = nil
		if v == nil {
			continue
		}
		if lp, ok := v.(*Loop); ok {
			if loop == nil {
				loop = lp
			} else if loop != lp {
				multi = true
			}
			continue
		}
		hasItem = true
		row[col] = v
	}
	if loop != nil {
		if multi || hasItem {
			return nil, fmt.Errorf("%s: columns %v must match either multiple items or a single loop", c.name, columns)
		}
		rows := make([]Row, len(loop.Rows))
		copy(rows, loop.Rows)
		return rows, nil
	}
	if !hasItem {
		return nil, nil
	}
	return []Row{row}, nil
}

// contextName feeds the ancestor trail of syntax errors.
func (c *container) contextName() string { return c.name }

// DataExtent is the root of a STAR tree: an ordered set of DataBlocks
// keyed by block name.
type DataExtent struct {
	container
}

// NewDataExtent returns an empty root container named Root.
func NewDataExtent() *DataExtent {
	return &DataExtent{container: newContainer("DataExtent", "Root")}
}

// Blocks returns the data blocks in insertion order.
func (e *DataExtent) Blocks() []*DataBlock {
	blocks := make([]*DataBlock, 0, len(e.keys))
	for _, key := range e.keys {
		if b, ok := e.items[key].(*DataBlock); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// DataBlock is a data_ block: an ordered set of items, loops, and
// saveframes. A loop is registered once under each of its column names,
// all keys resolving to the same *Loop.
type DataBlock struct {
	container

	// TagPrefix, when set, is prepended to item tags on writing. The
	// generic parser leaves it empty; the dialect layer fills it in.
	TagPrefix string
}

// NewDataBlock returns an empty data block.
func NewDataBlock(name string) *DataBlock {
	return &DataBlock{container: newContainer("DataBlock", name)}
}

// SaveFrame is a save_ frame: an ordered set of items and loops.
type SaveFrame struct {
	container

	// TagPrefix, when set, is prepended to item tags on writing.
	TagPrefix string

	// Category is the saveframe category assigned by dialect conversion.
	// Generic parsing leaves it empty.
	Category string
}

// NewSaveFrame returns an empty saveframe.
func NewSaveFrame(name string) *SaveFrame {
	return &SaveFrame{container: newContainer("SaveFrame", name)}
}
