package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Volunteer struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

// VolunteerRequest is one volunteer's application against a post. A volunteer
// holds at most one live request per post; the pair (postId, volunteer.email)
// is uniqueness-enforced at the storage layer.
type VolunteerRequest struct {
	ID         bson.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PostID     bson.ObjectID `json:"postId" bson:"postId"`
	PostTitle  string        `json:"postTitle,omitempty" bson:"postTitle,omitempty"`
	Volunteer  Volunteer     `json:"volunteer" bson:"volunteer"`
	Suggestion string        `json:"suggestion,omitempty" bson:"suggestion,omitempty"`
	Status     string        `json:"status" bson:"status"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
}

const StatusRequested = "requested"
