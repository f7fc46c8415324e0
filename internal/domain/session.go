package domain

// Storage slots holding the session triple.
const (
	SlotSessionID = "session_id"
	SlotUserID    = "user_id"
	SlotUsername  = "username"
)

// SessionSlots lists the three keys in write order.
var SessionSlots = []string{SlotSessionID, SlotUserID, SlotUsername}

// Session is the authenticated triple issued by the backend. The token is opaque.
type Session struct {
	Token       string
	UserID      string
	DisplayName string
}

// Values maps the session onto its storage slots.
func (s Session) Values() map[string]string {
	return map[string]string{
		SlotSessionID: s.Token,
		SlotUserID:    s.UserID,
		SlotUsername:  s.DisplayName,
	}
}

// SessionFromSlots rebuilds a session; ok is false unless every slot is present.
func SessionFromSlots(values map[string]string) (Session, bool) {
	for _, slot := range SessionSlots {
		if _, present := values[slot]; !present {
			return Session{}, false
		}
	}
	return Session{
		Token:       values[SlotSessionID],
		UserID:      values[SlotUserID],
		DisplayName: values[SlotUsername],
	}, true
}

// LoginResult is what a successful login exchange yields.
type LoginResult struct {
	Session      Session
	HistoryCount int
}
