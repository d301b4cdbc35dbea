package domain

import "time"

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

// User represents a user in the system (either a Coach or an Athlete).
type User struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	Email        string `bson:"email" json:"email"`    // Should be unique
	PasswordHash string `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role   `bson:"role" json:"role"`
	// Athletes register as pending and stay gated off data routes until a
	// coach approves them.
	Pending   bool      `bson:"pending" json:"pending"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// --- Coach-specific ---
	// Stores IDs of Athletes managed by this Coach.
	AthleteIDs []string `bson:"athleteIds,omitempty" json:"athleteIds,omitempty"`

	// --- Athlete-specific ---
	// Stores the ID of the Coach managing this Athlete.
	CoachID *string `bson:"coachId,omitempty" json:"coachId,omitempty"`
}

// ProfilePatch carries partial-update fields for a user's own profile.
type ProfilePatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsAthlete() bool {
	return u.Role == RoleAthlete
}
