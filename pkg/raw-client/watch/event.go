// file: pkg/raw-client/watch/event.go

package watch

import "encoding/json"

// EventType 定义了 watch 事件的类型。
type EventType string

const (
	Added    EventType = "ADDED"
	Modified EventType = "MODIFIED"
	Deleted  EventType = "DELETED"
	Bookmark EventType = "BOOKMARK"
	Error    EventType = "ERROR"
)

// Event is one frame of a watch stream. Object is left undecoded; the
// consumer knows the concrete type (or keeps it unstructured).
type Event struct {
	Type   EventType       `json:"type"`
	Object json.RawMessage `json:"object"`
}
