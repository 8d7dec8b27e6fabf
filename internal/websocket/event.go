package websocket

type EventType string

const (
	EventReportCreated       EventType = "report.created"
	EventReportStatusUpdated EventType = "report.status_updated"
	EventCommentCreated      EventType = "comment.created"
)

type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
	Meta    *EventMeta  `json:"meta,omitempty"`
}

type EventMeta struct {
	Timestamp int64 `json:"timestamp"`
	ReportID  int64 `json:"reportId,omitempty"`
}
