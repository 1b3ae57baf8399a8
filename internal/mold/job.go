package mold

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job describes a batch of mold sections sharing one rib count.
//
// Sections are given either as parallel sequences of positions along the
// body with their face and back radii, or as named sections in Extra (or both).
// Job-level Ribs and WidthSection fill in sections that leave them unset.
type Job struct {
	Ribs         int     `json:"ribs" yaml:"ribs"`
	WidthSection float64 `json:"width_section,omitempty" yaml:"width_section,omitempty"`

	// Output options
	DPI       int    `json:"dpi,omitempty" yaml:"dpi,omitempty"`
	Print     bool   `json:"print,omitempty" yaml:"print,omitempty"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Page      string `json:"page,omitempty" yaml:"page,omitempty"`

	// Parallel per-position sequences (mm)
	Positions []float64 `json:"positions,omitempty" yaml:"positions,omitempty"`
	Face      []float64 `json:"face,omitempty" yaml:"face,omitempty"`
	Back      []float64 `json:"back,omitempty" yaml:"back,omitempty"`

	// Named auxiliary sections
	Extra []Section `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Defaults for job output
const (
	DefaultDPI    = 300
	DefaultFormat = "png"
)

// LoadJob loads a batch job from a JSON or YAML file
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var job Job
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &job)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &job)
	default:
		return nil, fmt.Errorf("unsupported job file type %q (use .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing job %s: %w", path, err)
	}

	job.applyDefaults()
	return &job, nil
}

// ExampleJob returns the built-in example batch: three body positions plus
// the fixed front and back auxiliary sections.
func ExampleJob() *Job {
	job := &Job{
		Ribs:      15,
		Positions: []float64{100, 200, 300},
		Face:      []float64{150, 180, 200},
		Back:      []float64{160, 200, 210},
		Extra: []Section{
			{Name: "front", FaceRadius: 118, BackRadius: 133},
			{Name: "back", FaceRadius: 95, BackRadius: 110},
		},
	}
	job.applyDefaults()
	return job
}

func (j *Job) applyDefaults() {
	if j.WidthSection == 0 {
		j.WidthSection = DefaultWidthSection
	}
	if j.DPI == 0 {
		j.DPI = DefaultDPI
	}
	if j.Format == "" {
		j.Format = DefaultFormat
	}
	j.Format = strings.TrimPrefix(strings.ToLower(j.Format), ".")
}

// Sections expands the job into the sections to generate, positions first
func (j *Job) Sections() ([]Section, error) {
	if len(j.Face) != len(j.Positions) || len(j.Back) != len(j.Positions) {
		return nil, &ValidationError{msg: fmt.Sprintf(
			"positions, face and back must have the same length (got %d, %d, %d)",
			len(j.Positions), len(j.Face), len(j.Back))}
	}

	sections := make([]Section, 0, len(j.Positions)+len(j.Extra))
	for i, pos := range j.Positions {
		sections = append(sections, Section{
			Name:       strconv.FormatFloat(pos, 'f', -1, 64),
			FaceRadius: j.Face[i],
			BackRadius: j.Back[i],
		})
	}
	sections = append(sections, j.Extra...)

	for i := range sections {
		if sections[i].NumRibs == 0 {
			sections[i].NumRibs = j.Ribs
		}
		if sections[i].WidthSection == 0 {
			sections[i].WidthSection = j.WidthSection
		}
		if sections[i].Name == "" {
			sections[i].Name = fmt.Sprintf("section-%d", i+1)
		}
	}
	return sections, nil
}

// Filename returns the output file of a section within the job's output directory
func (j *Job) Filename(sec Section) string {
	return filepath.Join(j.OutputDir, sec.Name+"."+j.Format)
}
