package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewRequestID generates a KSUID string used to correlate log lines for a
// single HTTP request.
func NewRequestID() string {
	return ksuid.New().String()
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewTokenID generates a snowflake ID string used as the jti claim of
// issued access tokens. The node ID comes from SNOWFLAKE_NODE, defaulting
// to 1; if the node cannot be initialized a KSUID is returned instead so
// every token still carries a unique id.
func NewTokenID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = n
			}
		}
		node, _ = snowflake.NewNode(nodeID)
	})
	if node == nil {
		return ksuid.New().String()
	}
	return node.Generate().String()
}
