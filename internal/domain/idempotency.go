package domain

import "time"

// Idempotency records the response of a completed unsafe request, keyed by
// (user_id, scope, key). Scope is the resource the request targeted, e.g. the
// submission id of a vote. A replay returns Status and Body verbatim instead
// of repeating the side effect.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_idem_user_scope_key,priority:1"`
	Scope     string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_idem_user_scope_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_idem_user_scope_key,priority:3"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	Body      string    `gorm:"type:TEXT NOT NULL"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
