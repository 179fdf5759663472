package embedding

import "container/list"

// DefaultCacheSize is how many models stay resident
const DefaultCacheSize = 3

type cacheEntry struct {
	name  string
	model Model
}

// modelCache is a fixed-capacity LRU of loaded models. It is not safe for concurrent use;
// Provider guards it.
type modelCache struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List // front is most recently used
}

func newModelCache(capacity int) *modelCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &modelCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// get returns a cached model and marks it most recently used
func (c *modelCache) get(name string) (Model, bool) {
	el, ok := c.items[name]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).model, true
}

// add inserts a model and returns whatever was evicted to make room
func (c *modelCache) add(name string, model Model) []Model {
	if el, ok := c.items[name]; ok {
		el.Value.(*cacheEntry).model = model
		c.order.MoveToFront(el)
		return nil
	}

	c.items[name] = c.order.PushFront(&cacheEntry{name: name, model: model})

	var evicted []Model
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		entry := oldest.Value.(*cacheEntry)
		c.order.Remove(oldest)
		delete(c.items, entry.name)
		evicted = append(evicted, entry.model)
	}
	return evicted
}

// names lists cached model names, most recently used first
func (c *modelCache) names() []string {
	names := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		names = append(names, el.Value.(*cacheEntry).name)
	}
	return names
}

// drain empties the cache and returns every model it held
func (c *modelCache) drain() []Model {
	models := make([]Model, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		models = append(models, el.Value.(*cacheEntry).model)
	}
	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
	return models
}
