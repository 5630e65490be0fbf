package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateEventID generates a unique identifier for a published event
func GenerateEventID() string {
	id := uuid.New().String()

	return fmt.Sprintf("evt-%s", id[:8])
}

// GetCurrentTime returns the current time in UTC
func GetCurrentTime() time.Time {
	return time.Now().UTC()
}
