// Package message implements the anonymous guestbook: captcha-gated message
// submission and paginated history reads.
package message

import "time"

// AnonymousAuthor is the display name substituted when a visitor posts
// anonymously. The frontend renders it verbatim.
const AnonymousAuthor = "匿名信徒"

const (
	// MaxContentLen bounds the message body.
	MaxContentLen = 500
	// MaxAuthorLen bounds the display name.
	MaxAuthorLen = 50
)

// Message is one guestbook entry.
type Message struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Content     string    `bson:"content" json:"content"`
	Author      string    `bson:"author" json:"author"`
	IsAnonymous bool      `bson:"isAnonymous" json:"isAnonymous"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
