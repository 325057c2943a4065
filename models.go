package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the stored user model. The id is store assigned and immutable;
// email carries a unique index that is the sole serialization point for
// concurrent registrations. The password hash never serializes to JSON.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// AuthUser is the wire representation of an authenticated identity
type AuthUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAuthUser builds the wire representation from an identity
func NewAuthUser(identity Identity) AuthUser {
	return AuthUser{
		ID:        identity.ID(),
		Name:      identity.Name(),
		Email:     identity.Email(),
		CreatedAt: identity.CreatedAt(),
		UpdatedAt: identity.UpdatedAt(),
	}
}
