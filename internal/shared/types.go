package shared

// Task type names registered with the asynq mux.
const (
	TypeDeliverActivity   = "federation:deliver_activity"
	TypeSweepUnreachable  = "federation:sweep_unreachable"
)

// Queue names. Activity delivery is latency-sensitive (remote servers show
// stale profiles until the Update lands), maintenance is not.
const (
	QueueDelivery    = "high"
	QueueDefault     = "default"
	QueueMaintenance = "low"
)

// DeliverActivityPayload carries one signed delivery to one recipient inbox.
// One task per recipient keeps failure domains isolated: a dead inbox only
// burns its own retries.
type DeliverActivityPayload struct {
	InboxURI     string `json:"inboxUri"`
	ActorURI     string `json:"actorUri"` // recipient actor, used for failure tracking
	ActivityJSON []byte `json:"activityJson"`
}

// SweepUnreachablePayload is empty for now; the sweep reads its threshold
// from config.
type SweepUnreachablePayload struct{}
