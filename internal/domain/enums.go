package domain

// Collection names a watched table.
type Collection string

const (
	CollectionQuestions Collection = "questions"
	CollectionAnswers   Collection = "answers"
)

func (c Collection) String() string { return string(c) }

// IsWatchable reports whether change notifications are published for c.
// Only the question collection carries a notify trigger.
func (c Collection) IsWatchable() bool {
	return c == CollectionQuestions
}

// ChangeOp is the row operation reported by a change notification.
type ChangeOp string

const (
	ChangeOpInsert ChangeOp = "INSERT"
	ChangeOpUpdate ChangeOp = "UPDATE"
	ChangeOpDelete ChangeOp = "DELETE"

	// ChangeOpResync is emitted after the change feed recovers from a lost
	// connection; notifications issued during the outage are unknown.
	ChangeOpResync ChangeOp = "RESYNC"
)

func (o ChangeOp) String() string { return string(o) }

func (o ChangeOp) IsValid() bool {
	switch o {
	case ChangeOpInsert, ChangeOpUpdate, ChangeOpDelete, ChangeOpResync:
		return true
	}
	return false
}
