package track

// Action is the mutation a tracking POST asks for. Exactly one is
// selected per request; they never compose.
type Action int

const (
	ActionNone Action = iota
	ActionIncrementSend
	ActionSuppress
	ActionReport
)

func (a Action) String() string {
	switch a {
	case ActionIncrementSend:
		return "increment_send"
	case ActionSuppress:
		return "suppress"
	case ActionReport:
		return "report"
	default:
		return "none"
	}
}

// Header names the tracking clients send.
const (
	HeaderSenderEmail   = "sender-email"
	HeaderUserEmail     = "user-email"
	HeaderIncrementSend = "increment-send"
	HeaderRemoveContent = "remove-email-content"
	HeaderReportContent = "report-email-content"
)

// Signals are the request inputs the dispatcher looks at.
type Signals struct {
	IncrementSend bool // increment-send: true
	RemoveContent bool // remove-email-content: true
	ReportContent bool // report-email-content: true
	SenderEmail   string
	UserEmail     string
	HasBody       bool
}

// Classify picks the action for a request. Priority order is fixed:
// increment-send, then suppress, then report. The first signal whose
// requirements are met wins and the rest are ignored even if also set.
func Classify(s Signals) Action {
	switch {
	case s.IncrementSend && s.SenderEmail != "":
		return ActionIncrementSend
	case s.RemoveContent && s.UserEmail != "":
		return ActionSuppress
	case s.ReportContent && s.UserEmail != "" && s.HasBody:
		return ActionReport
	default:
		return ActionNone
	}
}
