package repository

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
	"github.com/rocketscienceinc/boardgames/internal/entity"
)

// envelope - a stored snapshot with the checksum of its JSON body.
type envelope struct {
	Checksum uint64          `json:"checksum"`
	Snapshot json.RawMessage `json:"snapshot"`
}

func encode(snapshot *entity.Snapshot) ([]byte, error) {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("could not marshal snapshot: %w", err)
	}

	data, err := json.Marshal(envelope{Checksum: xxhash.Sum64(body), Snapshot: body})
	if err != nil {
		return nil, fmt.Errorf("could not marshal envelope: %w", err)
	}

	return data, nil
}

// decode - any damage to the stored bytes is reported as ErrCorruptSnapshot.
func decode(data []byte) (*entity.Snapshot, error) {
	var stored envelope
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptSnapshot, err)
	}

	if xxhash.Sum64(stored.Snapshot) != stored.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", apperror.ErrCorruptSnapshot)
	}

	var snapshot entity.Snapshot
	if err := json.Unmarshal(stored.Snapshot, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptSnapshot, err)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
