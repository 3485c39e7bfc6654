package machine

// RotorStep records one rotor (or reflector) crossing inside a signal
// trace: the contact index and symbol on entry and on exit.
type RotorStep struct {
	RotorID    int    `json:"rotorId,omitempty"`
	EntryIndex int    `json:"entryIndex"`
	EntryChar  string `json:"entryChar"`
	ExitIndex  int    `json:"exitIndex"`
	ExitChar   string `json:"exitChar"`
}

// SignalTrace is the full per-character record of one keypress. It is a
// first-class oracle: two machines in identical state must produce
// literally identical traces for the same input.
type SignalTrace struct {
	Input           string      `json:"input"`
	Output          string      `json:"output"`
	PositionsBefore string      `json:"positionsBefore"`
	PositionsAfter  string      `json:"positionsAfter"`
	AdvancedRotors  []int       `json:"advancedRotors"`
	Forward         []RotorStep `json:"forward"`
	Reflector       RotorStep   `json:"reflector"`
	Backward        []RotorStep `json:"backward"`
	DurationMs      int64       `json:"durationMs"`
}
