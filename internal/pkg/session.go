package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - a unique id for one game session.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
