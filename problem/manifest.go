package problem

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// manifest is the authoring format used by the admin importer:
//
//	id = "aplusb"
//	contest_id = "spring-2026"
//	total_marks = 20
//
//	[[tests]]
//	input = "2 3"
//	expected_output = "5"
type manifest struct {
	ID         string `toml:"id"`
	ContestID  string `toml:"contest_id"`
	TotalMarks int    `toml:"total_marks"`
	Tests      []struct {
		Input          string `toml:"input"`
		ExpectedOutput string `toml:"expected_output"`
		Hidden         bool   `toml:"hidden"`
	} `toml:"tests"`
}

// ParseManifest decodes and validates a TOML problem manifest. Blank test
// cases are rejected here, at authoring time.
func ParseManifest(data []byte) (Problem, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Problem{}, fmt.Errorf("failed to parse problem manifest: %w", err)
	}
	p := Problem{
		ID:         m.ID,
		ContestID:  m.ContestID,
		TotalMarks: m.TotalMarks,
		Tests:      make([]TestCase, 0, len(m.Tests)),
	}
	for _, t := range m.Tests {
		p.Tests = append(p.Tests, TestCase{
			Input:          t.Input,
			ExpectedOutput: t.ExpectedOutput,
			IsHidden:       t.Hidden,
		})
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}
