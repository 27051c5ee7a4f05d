package claymark

import (
	"encoding/binary"
	"hash/fnv"
)

// ElementIDFor returns the stable ElementID an explicit `<element id="label">`
// (or ElementDeclaration.WithID(label)) resolves to, so a host can address
// an element by its own label — for floating attachment, scroll targeting,
// or a get_element_id-style lookup — without having captured the ID at
// configure time (spec §4.2/§6).
func ElementIDFor(label string) ElementID {
	return hashIdentity(label, 0, 0)
}

// hashIdentity computes the stable ElementID for an element from its label,
// its parent's ElementID, and a discovery-order offset (spec §4.2: "FNV-1a
// class" hashing of label+parent+offset). Anonymous elements hash an empty
// label with their sibling index as offset, so two anonymous siblings at
// the same position in the tree always collide predictably rather than
// silently aliasing with a named element.
func hashIdentity(label string, parent ElementID, offset uint32) ElementID {
	h := fnv.New32a()
	h.Write([]byte(label))
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(parent))
	h.Write(buf[:])
	binary.LittleEndian.PutUint32(buf[:], offset)
	h.Write(buf[:])
	return ElementID(h.Sum32())
}
