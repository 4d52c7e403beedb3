package farm

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPlotLocked             = errors.New("farm plot is locked")
	ErrPlotOccupied           = errors.New("farm plot already has a crop")
	ErrPlotEmpty              = errors.New("farm plot is empty")
	ErrPlantLocked            = errors.New("plant is not unlocked yet")
	ErrNotEnoughEnergy        = errors.New("not enough farm energy")
	ErrToolUpgradeUnavailable = errors.New("tool upgrade unavailable")
)

// CropNotReadyError is returned when harvesting a crop that is still
// growing; it carries the remaining growth time and unwraps to
// ErrPlotOccupied.
type CropNotReadyError struct {
	Remaining time.Duration
}

func (e *CropNotReadyError) Error() string {
	return fmt.Sprintf("crop is still growing, about %d minutes left", int(e.Remaining.Minutes()))
}

func (e *CropNotReadyError) Unwrap() error { return ErrPlotOccupied }

// InsufficientFundsError carries the available and required gold amounts.
type InsufficientFundsError struct {
	Available int64
	Required  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d gold, need %d", e.Available, e.Required)
}
