package repository

import "time"

// Favorite is a worker bookmarked on this device.
type Favorite struct {
	WorkerID   string
	WorkerName string
	CreatedAt  time.Time
}
