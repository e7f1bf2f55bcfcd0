package domain

import "time"

// Swipe directions.
const (
	SwipeLeft  = "left"
	SwipeRight = "right"
)

// Swipe records one user's verdict on another. At most one live row exists
// per (swiper, swiped) pair; a repeat swipe overwrites direction and time.
type Swipe struct {
	SwiperID  string    `json:"swiper_id" db:"swiper_id"`
	SwipedID  string    `json:"swiped_id" db:"swiped_id"`
	Direction string    `json:"direction" db:"direction"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (s *Swipe) IsRight() bool {
	return s.Direction == SwipeRight
}
