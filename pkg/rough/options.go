package rough

// Options tunes the roughness model. Start from DefaultOptions and override
// what you need. Fill weight, hachure gap and dash or zigzag spacing are
// derived from the stroke width when they are not positive.
type Options struct {
	MaxRandomnessOffset    float64 `json:"max_randomness_offset"`
	Roughness              float64 `json:"roughness"`
	Bowing                 float64 `json:"bowing"`
	StrokeWidth            float64 `json:"stroke_width"`
	CurveTightness         float64 `json:"curve_tightness"`
	CurveFitting           float64 `json:"curve_fitting"`
	CurveStepCount         float64 `json:"curve_step_count"`
	FillWeight             float64 `json:"fill_weight"`
	HachureAngle           float64 `json:"hachure_angle"`
	HachureGap             float64 `json:"hachure_gap"`
	DashOffset             float64 `json:"dash_offset"`
	DashGap                float64 `json:"dash_gap"`
	ZigzagOffset           float64 `json:"zigzag_offset"`
	DisableMultiStroke     bool    `json:"disable_multi_stroke,omitempty"`
	DisableMultiStrokeFill bool    `json:"disable_multi_stroke_fill,omitempty"`
	PreserveVertices       bool    `json:"preserve_vertices,omitempty"`
}

// DefaultOptions returns the classic sketchy look.
func DefaultOptions() Options {
	return Options{
		MaxRandomnessOffset: 2,
		Roughness:           1,
		Bowing:              1,
		StrokeWidth:         1,
		CurveTightness:      0,
		CurveFitting:        0.95,
		CurveStepCount:      9,
		FillWeight:          -1,
		HachureAngle:        -41,
		HachureGap:          -1,
		DashOffset:          -1,
		DashGap:             -1,
		ZigzagOffset:        -1,
	}
}

// minHachureGap keeps scanline hatching finite.
const minHachureGap = 0.1

// resolve replaces out-of-range and derived values with concrete ones.
func (o Options) resolve() Options {
	if !(o.StrokeWidth > 0) {
		o.StrokeWidth = 1
	}
	if !(o.Roughness >= 0) {
		o.Roughness = 0
	}
	if !(o.MaxRandomnessOffset >= 0) {
		o.MaxRandomnessOffset = 0
	}
	if !(o.CurveStepCount >= 1) {
		o.CurveStepCount = 9
	}
	if !(o.CurveFitting > 0 && o.CurveFitting <= 1) {
		o.CurveFitting = 0.95
	}
	if !(o.FillWeight > 0) {
		o.FillWeight = o.StrokeWidth / 2
	}
	if !(o.HachureGap > 0) {
		o.HachureGap = o.StrokeWidth * 4
	}
	o.HachureGap = max(o.HachureGap, minHachureGap)
	if !(o.DashOffset > 0) {
		o.DashOffset = o.HachureGap
	}
	if !(o.DashGap > 0) {
		o.DashGap = o.HachureGap
	}
	if !(o.ZigzagOffset > 0) {
		o.ZigzagOffset = o.HachureGap
	}
	return o
}
