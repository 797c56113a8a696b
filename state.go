package swiperefresh

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// SavedState is what survives the host tearing the layout down and building
// it again.
type SavedState struct {
	Refreshing bool `toml:"refreshing"`
}

// SaveState captures the layout state.
func (l *Layout) SaveState() SavedState {
	return SavedState{Refreshing: l.refreshing}
}

// RestoreState applies s. A restored refresh shows the indicator the same
// way SetRefreshing does and does not call the refresh callback.
func (l *Layout) RestoreState(s SavedState) error {
	if err := l.SetRefreshing(s.Refreshing); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	return nil
}

// MarshalBinary encodes the state for hosts that persist it.
func (s SavedState) MarshalBinary() ([]byte, error) {
	return toml.Marshal(s)
}

// UnmarshalBinary decodes state written by MarshalBinary.
func (s *SavedState) UnmarshalBinary(data []byte) error {
	if err := toml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("decode saved state: %w", err)
	}
	return nil
}
