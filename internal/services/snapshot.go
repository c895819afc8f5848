package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/draftkeep/draftkeep/internal/common"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// EntitySet names a local collection included in a snapshot bundle.
// Snapshots themselves are never bundled into other snapshots.
type EntitySet string

const (
	SetDrafts   EntitySet = "drafts"
	SetOffline  EntitySet = "offline_content"
	SetMetadata EntitySet = "metadata_cache"
)

// IsValid reports whether s names a bundleable collection.
func (s EntitySet) IsValid() bool {
	switch s {
	case SetDrafts, SetOffline, SetMetadata:
		return true
	}
	return false
}

// snapshotDoc is the self-describing serialized form of a snapshot: entity
// sets plus their rows, suitable for file export.
type snapshotDoc struct {
	Version    int           `json:"version"`
	SnapshotID string        `json:"snapshot_id"`
	OrgID      string        `json:"org_id"`
	AppID      string        `json:"app_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	Sets       []snapshotSet `json:"sets"`
}

type snapshotSet struct {
	Entity EntitySet         `json:"entity"`
	Rows   []json.RawMessage `json:"rows"`
}

const snapshotDocVersion = 1

//go:embed snapshot_schema.json
var snapshotSchemaJSON string

var (
	snapshotSchemaOnce sync.Once
	snapshotSchema     *jsonschema.Schema
	snapshotSchemaErr  error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(snapshotSchemaJSON))
		if err != nil {
			snapshotSchemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("snapshot.schema.json", doc); err != nil {
			snapshotSchemaErr = err
			return
		}
		snapshotSchema, snapshotSchemaErr = c.Compile("snapshot.schema.json")
	})
	return snapshotSchema, snapshotSchemaErr
}

// validateSnapshotDoc checks a serialized bundle against the embedded JSON
// Schema and decodes it. Rejection happens before any row is written.
func validateSnapshotDoc(serialized string) (*snapshotDoc, error) {
	sch, err := compiledSnapshotSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile snapshot schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(serialized))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidSnapshot, err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidSnapshot, err)
	}

	var doc snapshotDoc
	if err := json.Unmarshal([]byte(serialized), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidSnapshot, err)
	}
	return &doc, nil
}
