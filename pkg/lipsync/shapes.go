package lipsync

// Shape is a mouth position from the fixed six symbol alphabet.
type Shape string

const (
	ShapeClosed       Shape = "A" // M, B, P and silence
	ShapeSlightlyOpen Shape = "B" // most consonants, clenched teeth
	ShapeOpen         Shape = "C" // EH, AE
	ShapeWideOpen     Shape = "D" // AA
	ShapeRounded      Shape = "E" // O, U, W
	ShapeTeethOnLip   Shape = "F" // F, V
)

// Shapes lists the alphabet in index order.
var Shapes = []Shape{
	ShapeClosed,
	ShapeSlightlyOpen,
	ShapeOpen,
	ShapeWideOpen,
	ShapeRounded,
	ShapeTeethOnLip,
}

const (
	MinShapeCount     = 3
	MaxShapeCount     = 6
	DefaultShapeCount = MaxShapeCount
)

func (s Shape) ordinal() (int, bool) {
	for i, sh := range Shapes {
		if sh == s {
			return i, true
		}
	}
	return 0, false
}

// Cue is a single timed mouth shape. Times are seconds from the start of the clip.
type Cue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Shape Shape   `json:"value"`
}

// RemappedCue is a Cue resolved to one of the images a rig actually has.
type RemappedCue struct {
	Cue
	ShapeIndex int `json:"shapeIndex"`
}

// remapTable holds, per supported image count, the target index of every
// alphabet symbol in Shapes order.
var remapTable = map[int][MaxShapeCount]int{
	// closed, half-open, open
	3: {0, 1, 2, 2, 1, 1},
	// closed, half-open, open, rounded
	4: {0, 1, 2, 2, 3, 1},
	// closed, half-open, open, wide, rounded
	5: {0, 1, 2, 3, 4, 1},
	6: {0, 1, 2, 3, 4, 5},
}

// ShapeIndex maps a shape onto a rig with count images. Unknown shapes map to
// 0 and unsupported counts fall back to the six image identity mapping.
func ShapeIndex(shape Shape, count int) int {
	row, ok := remapTable[count]
	if !ok {
		row = remapTable[MaxShapeCount]
	}
	i, ok := shape.ordinal()
	if !ok {
		return 0
	}
	return row[i]
}

// RemapShapes resolves every cue to a shape index for a rig with count images.
func RemapShapes(cues []Cue, count int) []RemappedCue {
	out := make([]RemappedCue, len(cues))
	for i, c := range cues {
		out[i] = RemappedCue{Cue: c, ShapeIndex: ShapeIndex(c.Shape, count)}
	}
	return out
}

// NormalizeShapeCount clamps a requested image count to what the remap tables
// support, returning the default for anything outside [3, 6].
func NormalizeShapeCount(count int) int {
	if count < MinShapeCount || count > MaxShapeCount {
		return DefaultShapeCount
	}
	return count
}

// appendCue adds a cue, extending the previous one instead when the shape repeats.
func appendCue(cues []Cue, c Cue) []Cue {
	if c.End <= c.Start {
		return cues
	}
	if n := len(cues); n > 0 && cues[n-1].Shape == c.Shape && cues[n-1].End == c.Start {
		cues[n-1].End = c.End
		return cues
	}
	return append(cues, c)
}
