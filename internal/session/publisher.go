package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"tripflow/internal/domain"
)

// itineraryFingerprint identifies itinerary content for idempotent
// publication. Two itineraries with equal content share a fingerprint.
func itineraryFingerprint(it domain.Itinerary) string {
	data, err := json.Marshal(it)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// publishLocked fires the publish callback unless this exact itinerary was
// already published. Caller holds c.mu.
func (c *Controller) publishLocked(it domain.Itinerary) {
	if c.publish == nil {
		return
	}
	fp := itineraryFingerprint(it)
	if fp != "" && fp == c.lastPublished {
		return
	}
	c.lastPublished = fp
	c.publish(it.Clone())
}
