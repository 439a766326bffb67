package scientist

import (
	"math/rand"
	"time"
)

// Scientist is the persistent record for one notable figure. The stored
// `image` field is either an absolute external URL or the object key of an
// uploaded image; Image and Thumbnail are resolved to URLs at read time by
// the service, so Thumbnail is never persisted.
type Scientist struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Title        string    `json:"title,omitempty" bson:"title,omitempty"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Achievements []string  `json:"achievements" bson:"achievements"`
	BirthYear    *int      `json:"birthYear,omitempty" bson:"birthYear,omitempty"`
	DeathYear    *int      `json:"deathYear,omitempty" bson:"deathYear,omitempty"`
	Subject      string    `json:"subject" bson:"subject"`
	Color        string    `json:"color" bson:"color"`
	Image        string    `json:"image" bson:"image"`
	Thumbnail    string    `json:"thumbnail,omitempty" bson:"-"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UpdateFields carries a partial update; nil fields are left untouched.
type UpdateFields struct {
	Name         *string
	Title        *string
	Description  *string
	Achievements []string
	BirthYear    *int
	DeathYear    *int
	Subject      *string
	Color        *string
	Image        *string
}

// Palette is the fixed set of card colors assigned at creation.
var Palette = []string{
	"#3498db", // blue
	"#e74c3c", // red
	"#2ecc71", // green
	"#f1c40f", // yellow
	"#9b59b6", // purple
	"#1abc9c", // teal
	"#e67e22", // orange
	"#34495e", // dark blue
}

// RandomColor draws one palette member from the given source.
func RandomColor(rng *rand.Rand) string {
	return Palette[rng.Intn(len(Palette))]
}
