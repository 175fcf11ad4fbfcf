package shortcut

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// DefaultLabel is used for application and description when a record omits them.
const DefaultLabel = "None"

// Shortcut is one user-defined key combination.
type Shortcut struct {
	ID          ID     `json:"id" yaml:"id"`                   // Immutable after creation
	HitNumber   uint64 `json:"hit_number" yaml:"hit_number"`   // Successful executions
	Shortcut    string `json:"shortcut" yaml:"shortcut"`       // Raw notation
	Application string `json:"application" yaml:"application"` // Application using this shortcut
	Description string `json:"description" yaml:"description"` // Short human description
	Comment     string `json:"comment" yaml:"comment"`         // Extra info
}

// Default returns an empty shortcut with a fresh ID and the default labels.
func Default() Shortcut {
	return Shortcut{
		ID:          NewID(),
		Application: DefaultLabel,
		Description: DefaultLabel,
	}
}

// plain drops the custom unmarshalers so the default decoders can be reused.
type plain Shortcut

// UnmarshalJSON decodes a shortcut, filling omitted fields from Default().
func (s *Shortcut) UnmarshalJSON(data []byte) error {
	p := plain(Default())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Shortcut(p)
	return nil
}

// UnmarshalYAML decodes a shortcut from a YAML sheet, filling omitted fields from Default().
func (s *Shortcut) UnmarshalYAML(node *yaml.Node) error {
	p := plain(Default())
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Shortcut(p)
	return nil
}

// UpdateFrom overwrites every mutable field with the values of other.
// The ID is identity and is left unchanged. HitNumber only grows, so a
// payload that omits it (decoded as 0) keeps the current count.
func (s *Shortcut) UpdateFrom(other Shortcut) {
	s.HitNumber = max(s.HitNumber, other.HitNumber)
	s.Shortcut = other.Shortcut
	s.Application = other.Application
	s.Description = other.Description
	s.Comment = other.Comment
}

// Key is the content identity used for deduplication.
// Every field except ID and HitNumber takes part; strings are NFC normalized
// so that visually identical records collapse.
type Key struct {
	Shortcut    string
	Application string
	Description string
	Comment     string
}

// Key returns the deduplication key of s.
func (s Shortcut) Key() Key {
	return Key{
		Shortcut:    norm.NFC.String(s.Shortcut),
		Application: norm.NFC.String(s.Application),
		Description: norm.NFC.String(s.Description),
		Comment:     norm.NFC.String(s.Comment),
	}
}

// Format renders s through a display template. Recognised placeholders are
// #id, #hit_number, #shortcut, #application, #description and #comment.
func (s Shortcut) Format(tmpl string) string {
	r := strings.NewReplacer(
		"#id", s.ID.String(),
		"#hit_number", strconv.FormatUint(s.HitNumber, 10),
		"#shortcut", s.Shortcut,
		"#application", s.Application,
		"#description", s.Description,
		"#comment", s.Comment,
	)
	return r.Replace(tmpl)
}

// Dedupe returns shortcuts with duplicates removed, keeping first occurrences.
// A shortcut is a duplicate when its Key or its ID was already seen.
// The result is always a new slice; the input is not modified.
func Dedupe(shortcuts []Shortcut) []Shortcut {
	return DedupeAgainst(nil, shortcuts)
}

// DedupeAgainst returns the incoming shortcuts that duplicate neither a
// shortcut in existing nor an earlier incoming one, in input order.
// existing itself is never filtered.
func DedupeAgainst(existing, incoming []Shortcut) []Shortcut {
	seenKey := make(map[Key]struct{}, len(existing)+len(incoming))
	seenID := make(map[ID]struct{}, len(existing)+len(incoming))
	for _, sc := range existing {
		seenKey[sc.Key()] = struct{}{}
		seenID[sc.ID] = struct{}{}
	}

	unique := make([]Shortcut, 0, len(incoming))
	for _, sc := range incoming {
		k := sc.Key()
		if _, dup := seenKey[k]; dup {
			continue
		}
		if _, dup := seenID[sc.ID]; dup {
			continue
		}
		seenKey[k] = struct{}{}
		seenID[sc.ID] = struct{}{}
		unique = append(unique, sc)
	}

	return unique
}
