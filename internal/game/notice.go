package game

// NoticeKind classifies a user-facing notice.
type NoticeKind int

const (
	NoticeInfo     NoticeKind = iota // Routine outcome, e.g. no composition found
	NoticeSuccess                    // Something the player achieved
	NoticeGuidance                   // The player needs to do something first
	NoticeFailure                    // A dependency failed; the session carries on
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeGuidance:
		return "guidance"
	case NoticeFailure:
		return "failure"
	default:
		return "info"
	}
}

// Notice is a short, non-blocking message for the player.
type Notice struct {
	Kind        NoticeKind
	Title       string
	Description string
}

func (n Notice) String() string {
	if n.Description == "" {
		return n.Title
	}
	return n.Title + ": " + n.Description
}
