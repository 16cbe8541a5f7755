package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FriendshipStatus is the state of a pairwise friendship.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

// Friendship is directional in storage (requester -> target) but unique per
// unordered pair: PairLo/PairHi hold the two user ids in byte order and carry
// the unique index, so concurrent inserts from either direction collide.
type Friendship struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID        `json:"requester_id" gorm:"type:uuid;not null;index"`
	TargetID    uuid.UUID        `json:"target_id" gorm:"type:uuid;not null;index"`
	PairLo      uuid.UUID        `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_friendship_pair"`
	PairHi      uuid.UUID        `json:"-" gorm:"type:uuid;not null;uniqueIndex:idx_friendship_pair"`
	Status      FriendshipStatus `json:"status" gorm:"size:16;not null;default:'pending'"`
	Message     string           `json:"message,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Target    *User `json:"target,omitempty" gorm:"foreignKey:TargetID"`
}

func (Friendship) TableName() string { return "friendships" }

func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (f *Friendship) BeforeSave(_ *gorm.DB) error {
	f.PairLo, f.PairHi = NormalizePair(f.RequesterID, f.TargetID)
	return nil
}

// NormalizePair orders two user ids so an unordered pair maps to one key.
func NormalizePair(a, b uuid.UUID) (lo, hi uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// Involves reports whether the given user is a party to this friendship.
func (f *Friendship) Involves(userID uuid.UUID) bool {
	return f.RequesterID == userID || f.TargetID == userID
}
