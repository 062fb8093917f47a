package graph

import (
	"strings"
	"time"
	"unicode"
)

// EntityType classifies a memory record.
type EntityType string

const (
	TypePerson       EntityType = "person"
	TypeProject      EntityType = "project"
	TypeConcept      EntityType = "concept"
	TypePattern      EntityType = "pattern"
	TypeProtocol     EntityType = "protocol"
	TypeOrganization EntityType = "organization"
)

// typeDirs maps each entity type to the repository subdirectory that holds it.
var typeDirs = map[EntityType]string{
	TypePerson:       "people",
	TypeProject:      "projects",
	TypeConcept:      "concepts",
	TypePattern:      "patterns",
	TypeProtocol:     "protocols",
	TypeOrganization: "organizations",
}

// typeColors maps each entity type to its display color for the rendering layer.
var typeColors = map[EntityType]string{
	TypePerson:       "#4A90E2",
	TypeProject:      "#7ED321",
	TypeConcept:      "#9013FE",
	TypePattern:      "#F5A623",
	TypeProtocol:     "#F8E71C",
	TypeOrganization: "#D0021B",
}

// Types returns all recognized entity types in fixed order.
func Types() []EntityType {
	return []EntityType{
		TypePerson, TypeProject, TypeConcept,
		TypePattern, TypeProtocol, TypeOrganization,
	}
}

// Dir returns the repository subdirectory for the type, e.g. "person" -> "people".
func (t EntityType) Dir() string {
	return typeDirs[t]
}

// Color returns the display color for the type.
func (t EntityType) Color() string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return "#CCCCCC"
}

// TypeForDir maps a repository subdirectory name to its entity type.
// Unrecognized directories return ok=false and are skipped by the scanner.
func TypeForDir(name string) (EntityType, bool) {
	for t, dir := range typeDirs {
		if dir == name {
			return t, true
		}
	}
	return "", false
}

// Slug normalizes a filename stem into its id segment: lower-cased, with
// runs of whitespace and punctuation (other than "_") collapsed to "-".
// The same input always yields the same slug, so ids round-trip.
func Slug(name string) string {
	var b strings.Builder
	lastSep := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastSep = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSep = false
		default:
			if !lastSep {
				b.WriteRune('-')
				lastSep = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// MakeID derives the stable entity id from a type and a filename stem,
// e.g. (concept, "Archaeological_Engineering") -> "concepts/archaeological_engineering".
func MakeID(t EntityType, name string) string {
	return t.Dir() + "/" + Slug(name)
}

// Entity is one parsed memory record. Content is retained for reference
// scanning only and is not part of the serialized document.
type Entity struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Type    EntityType `json:"type"`
	Path    string     `json:"path"`
	Color   string     `json:"color"`
	Content string     `json:"-"`
}

// Reference is a raw mention of one entity inside another's content,
// before resolution against the known id set.
type Reference struct {
	SourceID string `json:"source_id"`
	Token    string `json:"token"`
}

// Edge is a resolved, validated directed link between two entities.
type Edge struct {
	FromID           string `json:"from_id"`
	ToID             string `json:"to_id"`
	RelationshipType string `json:"relationship_type"`
}

// RelationshipReferences is the only relationship type the pipeline emits.
const RelationshipReferences = "references"

// Metadata describes one generation run.
type Metadata struct {
	NodeCount   int            `json:"node_count"`
	EdgeCount   int            `json:"edge_count"`
	TypeCounts  map[string]int `json:"type_counts"`
	GeneratedAt time.Time      `json:"generated_at"`
	RunID       string         `json:"run_id"`
}

// Diagnostics accumulates non-fatal conditions observed during a run.
type Diagnostics struct {
	Unresolved []Reference `json:"unresolved,omitempty"`
}

// UnresolvedCount returns the number of dropped references.
func (d *Diagnostics) UnresolvedCount() int {
	if d == nil {
		return 0
	}
	return len(d.Unresolved)
}

// Graph is the complete artifact of one generation run. It is immutable
// once assembled. Diagnostics ride alongside the node/edge contract so
// observability survives serialization.
type Graph struct {
	Nodes       []Entity     `json:"nodes"`
	Edges       []Edge       `json:"edges"`
	Metadata    Metadata     `json:"metadata"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}
