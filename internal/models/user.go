package models

import "time"

// User is a profile together with its workouts. The total score is never
// stored; it is derived from Workouts on read.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Workouts []Workout `json:"workouts"`
}

type Profile struct {
	ID        string    `json:"id" toml:"id"`
	Username  string    `json:"username" toml:"username"`
	Email     string    `json:"email" toml:"email"`
	CreatedAt time.Time `json:"created_at" toml:"created_at"`
}
