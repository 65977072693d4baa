package common

import (
	"math/rand"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// UUIDint64 returns a cluster-unique int64 id.
func UUIDint64() int64 {
	nodeOnce.Do(func() {
		var err error
		node, err = snowflake.NewNode(rand.Int63n(1024))
		if err != nil {
			node, _ = snowflake.NewNode(1)
		}
	})
	return node.Generate().Int64()
}
