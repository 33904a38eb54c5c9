package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mosaicdev/mosaic-registry/interfaces"
)

// DeploymentFileName is the object name every store writes the record under.
const DeploymentFileName = "deployment.json"

// encodeRecord renders a record the way it is written to deployment.json:
// two-space indentation and a trailing newline.
func encodeRecord(record *interfaces.DeploymentRecord) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("nil deployment record")
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode deployment record: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeRecord(data []byte) (*interfaces.DeploymentRecord, error) {
	var record interfaces.DeploymentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode deployment record: %w", err)
	}
	return &record, nil
}
