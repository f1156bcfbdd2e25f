package report

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/purple-team-sim/internal/purple_team_simulation/domain"
)

// Classification is the handling level printed on a report.
type Classification string

const (
	Public       Classification = "public"
	Internal     Classification = "internal"
	Confidential Classification = "confidential"
	Restricted   Classification = "restricted"
	Secret       Classification = "secret"
)

type ClassificationInfo struct {
	Level       Classification `json:"level"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
}

var classifications = map[Classification]ClassificationInfo{
	Public:       {Public, "PUBLIC", "Information that can be shared publicly"},
	Internal:     {Internal, "INTERNAL USE ONLY", "Information for internal organizational use"},
	Confidential: {Confidential, "CONFIDENTIAL", "Sensitive information requiring protection"},
	Restricted:   {Restricted, "RESTRICTED", "Highly sensitive organizational information"},
	Secret:       {Secret, "SECRET", "Classified information requiring highest protection"},
}

// ParseClassification accepts a level name in any case.
func ParseClassification(s string) (Classification, error) {
	c := Classification(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := classifications[c]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidClassification, s)
	}
	return c, nil
}

// Info returns the label and description, falling back to internal for
// unknown levels.
func (c Classification) Info() ClassificationInfo {
	if info, ok := classifications[c]; ok {
		return info
	}
	return classifications[Internal]
}
