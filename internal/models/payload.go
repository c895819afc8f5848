// Package models defines the client-side data model of the offline layer:
// drafts, offline-saved copies, cached metadata lists, snapshots, and the
// in-memory connectivity state.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// PayloadKind is the closed set of collection codes a payload can carry.
// The discriminant is stored alongside the opaque bytes so the storage
// layer stays generic while call sites keep type safety.
type PayloadKind string

const (
	KindArticle  PayloadKind = "article"
	KindPage     PayloadKind = "page"
	KindMedia    PayloadKind = "media"
	KindTemplate PayloadKind = "template"
)

// IsValid reports whether k is one of the known collection codes.
func (k PayloadKind) IsValid() bool {
	switch k {
	case KindArticle, KindPage, KindMedia, KindTemplate:
		return true
	}
	return false
}

// Payload is an opaque content body tagged with its collection code.
// The layer never interprets Data; it only moves and fingerprints it.
type Payload struct {
	Kind PayloadKind     `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// NewPayload wraps raw content bytes with a collection code.
func NewPayload(kind PayloadKind, data []byte) (*Payload, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown payload kind %q", kind)
	}
	return &Payload{Kind: kind, Data: json.RawMessage(data)}, nil
}

// Size returns the stored byte length of the payload body.
func (p *Payload) Size() int {
	if p == nil {
		return 0
	}
	return len(p.Data)
}

// HashPayload returns the hex-encoded SHA-256 fingerprint of the payload
// body, used for payloadHash on offline copies and baseHash on drafts.
func HashPayload(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
