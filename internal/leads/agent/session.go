package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionID generates the correlation token for one submission's live
// event stream: session_<agentId>_<epochMillis>_<randomSuffix>.
func NewSessionID(agentID string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("session_%s_%d_%s", agentID, time.Now().UnixMilli(), suffix)
}
