package user

import "time"

// User is the profile of a registered player as stored by the account
// service. Only the fields the game server shows are mapped.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Username  string    `json:"username" bson:"username"`
	Rating    int       `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
