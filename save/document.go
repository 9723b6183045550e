// Package save defines the in-memory model of a brs save: identity and
// catalog metadata, an optional preview image, the ordered brick list, and
// the component schemas whose per-brick values live on the bricks.
//
// The model carries no behavior beyond small helpers; encoding and decoding
// live in the root brs package and in package section.
package save

import (
	"github.com/google/uuid"

	"github.com/arloliu/brs/format"
)

// Document is a complete save.
type Document struct {
	GameVersion int32
	Identity    Identity
	Catalog     Catalog
	Preview     Preview
	Bricks      []Brick
	// Components maps a component name to its schema. Per-brick values are
	// stored in Brick.Components under the same name.
	Components map[string]Component
}

// Actor identifies a user by id and display name.
type Actor struct {
	ID   uuid.UUID
	Name string
}

// Identity is the first header section.
type Identity struct {
	Map    string
	Author Actor
	// Host is the user that hosted the server the save was made on. A nil
	// Host is written as the author; decoding always yields a non-nil Host.
	Host        *Actor
	Description string
	SaveTime    [format.SaveTimeSize]byte
	// BrickCount must equal len(Document.Bricks) when encoding.
	BrickCount int32
}

// ResolvedHost returns the host, falling back to the author.
func (id Identity) ResolvedHost() Actor {
	if id.Host != nil {
		return *id.Host
	}

	return id.Author
}

// Owner is an entry of the brick owner table.
type Owner struct {
	Actor
	BrickCount uint32
}

// Catalog is the second header section: the lookup tables bricks index into.
type Catalog struct {
	Mods              []string
	BrickAssets       []string
	Colors            []Color
	Materials         []string
	BrickOwners       []Owner
	PhysicalMaterials []string
}

// Preview is an optional embedded screenshot.
type Preview struct {
	// Type is the preview tag; format.PreviewNone means no preview.
	Type format.PreviewType
	Data []byte
}

// Present reports whether the preview carries an image.
func (p Preview) Present() bool {
	return p.Type != format.PreviewNone
}

// Component is the schema of a named per-brick data overlay.
type Component struct {
	Version int32
	// Properties is the ordered schema. Every brick that references the
	// component must carry a value for each property.
	Properties []Property
}

// Property is one (name, type) schema entry. Type is a type name accepted
// by format.ParseValueKind.
type Property struct {
	Name string
	Type string
}
