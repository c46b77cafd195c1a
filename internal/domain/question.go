package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is a top-level anonymous post.
// AnswerCount is maintained by the database and is eventually consistent
// with the number of answers; clients never write it.
type Question struct {
	ID          uuid.UUID
	Content     string
	CreatedAt   time.Time
	AnswerCount int
}

// Answer is a reply scoped to exactly one Question.
type Answer struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	Content    string
	CreatedAt  time.Time
}

// ChangeEvent signals that a row in a watched collection was inserted,
// updated, or deleted. Subscribers treat every event the same way; the
// payload only identifies the row for logging.
type ChangeEvent struct {
	Collection Collection
	Op         ChangeOp
	ID         uuid.UUID
}
