package filterspec

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
	k8syaml "sigs.k8s.io/yaml"

	"github.com/opencost/filterkit/pkg/filter"
	"github.com/opencost/filterkit/pkg/util/formatutil"
	"github.com/opencost/filterkit/pkg/util/json"
)

// MatchMode decides how the predicates of a chain are combined.
type MatchMode string

const (
	MatchAll MatchMode = "all"
	MatchAny MatchMode = "any"
)

// Predicate kinds
const (
	KindContains        = "contains"
	KindContainsDeep    = "containsDeep"
	KindNotContains     = "notContains"
	KindNotContainsDeep = "notContainsDeep"
	KindEqual           = "equal"
	KindNotEqual        = "notEqual"
	KindEmpty           = "empty"
	KindNotEmpty        = "notEmpty"
)

// Transform kinds
const (
	KindDate       = "date"
	KindRound      = "round"
	KindSplitRange = "splitRange"
	KindRoundSplit = "roundSplit"
)

// Date sources
const (
	SourceEpochMillis = "epochMillis"
	SourceRFC3339     = "rfc3339"
)

// PredicateSpec describes a single predicate applied to the value found at Field.
type PredicateSpec struct {
	Kind  string               `json:"kind" yaml:"kind"`
	Field string               `json:"field,omitempty" yaml:"field,omitempty"`
	Value any                  `json:"value,omitempty" yaml:"value,omitempty"`
	Loose bool                 `json:"loose,omitempty" yaml:"loose,omitempty"`
	Empty *filter.EmptyOptions `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// TransformSpec describes a formatter reading the value at Field and writing its output to
// Into, which defaults to Field.
type TransformSpec struct {
	Kind      string                   `json:"kind" yaml:"kind"`
	Field     string                   `json:"field" yaml:"field"`
	Into      string                   `json:"into,omitempty" yaml:"into,omitempty"`
	Pattern   string                   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Source    string                   `json:"source,omitempty" yaml:"source,omitempty"`
	Precision int                      `json:"precision,omitempty" yaml:"precision,omitempty"`
	Range     *formatutil.RangeOptions `json:"range,omitempty" yaml:"range,omitempty"`
}

// ChainSpec is the file form of a filter chain.
type ChainSpec struct {
	Match      MatchMode       `json:"match,omitempty" yaml:"match,omitempty"`
	Predicates []PredicateSpec `json:"predicates,omitempty" yaml:"predicates,omitempty"`
	Transforms []TransformSpec `json:"transforms,omitempty" yaml:"transforms,omitempty"`
}

// Load reads a chain description from a YAML or JSON file.
func Load(path string) (*ChainSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading chain spec %s", path)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing chain spec %s", path)
	}
	return spec, nil
}

// Parse decodes a YAML or JSON chain description. Keys inside predicate values keep their
// case.
func Parse(data []byte) (*ChainSpec, error) {
	raw, err := k8syaml.YAMLToJSON(data)
	if err != nil {
		return nil, err
	}

	spec := &ChainSpec{}
	if err := json.Unmarshal(raw, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// YAML renders the spec back to YAML.
func (cs *ChainSpec) YAML() ([]byte, error) {
	return yaml.Marshal(cs)
}
