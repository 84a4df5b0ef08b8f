// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SignalVector is the normalized eight-signal summary of a scenario. The five
// primary signals come first, followed by the three secondary signals. Every
// numeric field is expected in [0,1].
type SignalVector struct {
	// Urgency is time pressure and emotional charge (0 = no rush, 1 = act now).
	Urgency float64 `json:"urgency" yaml:"urgency"`

	// Strategy is the clarity of an existing plan (0 = improvising, 1 = detailed protocol).
	Strategy float64 `json:"strategy" yaml:"strategy"`

	// Risk is exposure to negative outcomes (0 = no downside, 1 = catastrophic).
	Risk float64 `json:"risk" yaml:"risk"`

	// Support is the strength of supporting evidence (0 = guessing, 1 = confirmed).
	Support float64 `json:"support" yaml:"support"`

	// Stability is the stability of conditions (0 = falling apart, 1 = calm).
	Stability float64 `json:"stability" yaml:"stability"`

	// Irreversibility is how permanent the consequences are (0 = fully reversible).
	Irreversibility float64 `json:"irreversibility" yaml:"irreversibility"`

	// Stakes is the magnitude of what is at risk (0 = trivial, 1 = existential).
	Stakes float64 `json:"stakes" yaml:"stakes"`

	// TimePressure is the cost of delay (0 = can wait forever, 1 = seconds matter).
	TimePressure float64 `json:"time_pressure" yaml:"time_pressure"`

	// Reasoning is the model's one or two sentence rationale.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}

// RangePolicy selects what happens when the model returns a numeric signal
// outside [0,1] or omits one.
type RangePolicy string

const (
	// RangeReject treats missing or out-of-range signals as a malformed response.
	RangeReject RangePolicy = "reject"

	// RangeClamp requires every signal but clamps values into [0,1].
	RangeClamp RangePolicy = "clamp"

	// RangePassthrough trusts any JSON object; missing signals read as 0.
	RangePassthrough RangePolicy = "passthrough"
)

// Valid reports whether p is a known policy.
func (p RangePolicy) Valid() bool {
	switch p {
	case RangeReject, RangeClamp, RangePassthrough:
		return true
	}
	return false
}
