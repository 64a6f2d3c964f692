package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered (v7) UUIDs, falling back to random v4
// when the system clock refuses to cooperate.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a fresh UUID string.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
