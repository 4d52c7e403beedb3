package quest

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/fallencrown/gamecore/gamecore/database/models"
)

const defaultNodeCacheSize = 256

// NodeCache is a read cache for quest nodes (with their choices). Nodes
// only change through the content synchronizer, which purges the cache
// after every successful sync.
type NodeCache struct {
	cache *lru.Cache
}

func NewNodeCache(size int) (*NodeCache, error) {
	if size <= 0 {
		size = defaultNodeCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &NodeCache{cache: cache}, nil
}

func (c *NodeCache) Get(nodeID string) (*models.QuestNode, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.cache.Get(nodeID)
	if !ok {
		return nil, false
	}
	node, ok := value.(*models.QuestNode)
	return node, ok
}

func (c *NodeCache) Add(node *models.QuestNode) {
	if c == nil || node == nil {
		return
	}
	c.cache.Add(node.ID, node)
}

func (c *NodeCache) Purge() {
	if c == nil {
		return
	}
	c.cache.Purge()
}
