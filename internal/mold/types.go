package mold

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultWidthSection is the width of the template band (mm) used when a
// section does not specify one.
const DefaultWidthSection = 35.0

// Point represents a 2D coordinate in millimetres.
// The origin sits on the face plane at the centre line of the bowl:
// - X-axis runs across the face
// - Y-axis points into the bowl (depth)
type Point = r2.Vec

// Section represents one cross-sectional slice of the mold
type Section struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Face half-width at the section position (mm)
	FaceRadius float64 `json:"face" yaml:"face"`

	// Bowl depth at the section position (mm)
	BackRadius float64 `json:"back" yaml:"back"`

	// Total number of ribs of the bowl
	NumRibs int `json:"ribs,omitempty" yaml:"ribs,omitempty"`

	// Width of the usable template band measured in from the face edge (mm)
	WidthSection float64 `json:"width_section,omitempty" yaml:"width_section,omitempty"`
}

// NewSection creates a section with the default template width
func NewSection(face, back float64, numRibs int) *Section {
	return &Section{
		FaceRadius:   face,
		BackRadius:   back,
		NumRibs:      numRibs,
		WidthSection: DefaultWidthSection,
	}
}

// Points returns the rib intersection points of the section
func (s *Section) Points() []Point {
	return RibPoints(s.FaceRadius, s.BackRadius, s.NumRibs)
}

// Validate checks if the section will produce a well-formed template.
// The geometry never calls it; a malformed section still renders, just distorted.
func (s *Section) Validate() error {
	if s.FaceRadius <= 0 {
		return &ValidationError{"face radius must be positive"}
	}
	if s.BackRadius <= 0 {
		return &ValidationError{"back radius must be positive"}
	}
	if s.NumRibs <= 0 {
		return &ValidationError{"number of ribs must be positive"}
	}
	if s.NumRibs%2 != 0 {
		return &ValidationError{msg: fmt.Sprintf("odd rib count %d: the last half division is dropped", s.NumRibs)}
	}
	if s.WidthSection <= 0 {
		return &ValidationError{"template width must be positive"}
	}
	if s.WidthSection > s.FaceRadius {
		return &ValidationError{msg: fmt.Sprintf("template width %.1f mm exceeds face radius %.1f mm", s.WidthSection, s.FaceRadius)}
	}
	return nil
}

// ValidationError represents a section validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
