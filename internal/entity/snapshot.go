package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/boardgames/internal/apperror"
)

// Snapshot - the serializable state of one game session. The redo stack is not part of it.
type Snapshot struct {
	ID         string    `json:"id"`
	Variant    Variant   `json:"variant"`
	Mode       Mode      `json:"mode"`
	Size       int       `json:"size"`
	Grids      []*Grid   `json:"grids"`
	UsedValues []int     `json:"used_values,omitempty"`
	Disabled   []bool    `json:"disabled,omitempty"`
	DisabledBy []string  `json:"disabled_by,omitempty"`
	Players    [2]Player `json:"players"`
	Turn       int       `json:"turn"`
	History    []Move    `json:"history"`
	SavedAt    time.Time `json:"saved_at"`
}

// Validate - structural checks that do not depend on the variant rules.
func (that *Snapshot) Validate() error {
	if that.ID == "" {
		return fmt.Errorf("%w: empty id", apperror.ErrCorruptSnapshot)
	}

	if len(that.Grids) == 0 {
		return fmt.Errorf("%w: no grids", apperror.ErrCorruptSnapshot)
	}

	for i, grid := range that.Grids {
		if grid == nil || grid.Width <= 0 || grid.Height <= 0 || len(grid.Cells) != grid.Width*grid.Height {
			return fmt.Errorf("%w: grid %d has inconsistent dimensions", apperror.ErrCorruptSnapshot, i)
		}
	}

	if that.Turn != 0 && that.Turn != 1 {
		return fmt.Errorf("%w: turn %d", apperror.ErrCorruptSnapshot, that.Turn)
	}

	if that.Disabled != nil && len(that.Disabled) != len(that.Grids) {
		return fmt.Errorf("%w: %d disabled flags for %d grids", apperror.ErrCorruptSnapshot, len(that.Disabled), len(that.Grids))
	}

	if that.DisabledBy != nil && len(that.DisabledBy) != len(that.Grids) {
		return fmt.Errorf("%w: %d disabled names for %d grids", apperror.ErrCorruptSnapshot, len(that.DisabledBy), len(that.Grids))
	}

	for _, player := range that.Players {
		if player.Name == "" {
			return fmt.Errorf("%w: player without a name", apperror.ErrCorruptSnapshot)
		}
	}

	return nil
}
