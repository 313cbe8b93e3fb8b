package proto

import (
	"sort"
)

// Descriptor describes one server protocol generation: its version word,
// architecture, the packet-type range it supports, its preference weight,
// and the factories for the version-specific session handlers.
//
// Descriptors are immutable. Versions form a behavioral override chain: the
// handlers a version-N descriptor builds behave like version N-1 except for
// the operations that generation explicitly changed.
type Descriptor interface {
	// Version is the protocol version word as it travels in the candidate
	// list (masked form for generations 11 and later).
	Version() int32

	// Architecture is the architecture identifier advertised with the
	// version.
	Architecture() int32

	// MinimumType and MaximumType bound the packet types the client
	// supports for this version.
	MinimumType() int32
	MaximumType() int32

	// Weight is the preference when several mutually acceptable versions
	// exist; higher wins.
	Weight() int

	// NewDatabase builds the database session handler for this generation
	// over an accepted connection.
	NewDatabase(c *Conn) Database

	// NewService builds the service-manager session handler.
	NewService(c *Conn) Service

	// NewStatement builds a statement handler bound to a database session
	// created by this descriptor.
	NewStatement(db Database) Statement
}

// Collection is an ordered, version-deduplicated set of descriptors: the
// candidate list the client advertises, and the table the server's accept
// reply is resolved against.
//
// Collections are built once at process start and read-only afterwards;
// tests build their own throwaway instances.
type Collection struct {
	descriptors []Descriptor
}

// NewCollection builds a collection from the given descriptors. Duplicate
// version words are deduplicated keeping the highest weight. The candidate
// order is highest version first.
func NewCollection(ds ...Descriptor) *Collection {
	byVersion := make(map[int32]Descriptor, len(ds))
	for _, d := range ds {
		if prev, ok := byVersion[d.Version()]; ok && prev.Weight() >= d.Weight() {
			continue
		}
		byVersion[d.Version()] = d
	}
	out := make([]Descriptor, 0, len(byVersion))
	for _, d := range byVersion {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return Generation(out[i].Version()) > Generation(out[j].Version())
	})
	return &Collection{descriptors: out}
}

// Descriptors returns the candidates in advertisement order (highest
// generation first). The slice is shared; callers must not modify it.
func (c *Collection) Descriptors() []Descriptor {
	return c.descriptors
}

// Len returns the number of candidates.
func (c *Collection) Len() int {
	return len(c.descriptors)
}

// Get returns the descriptor registered for the exact version word, or nil.
func (c *Collection) Get(version int32) Descriptor {
	for _, d := range c.descriptors {
		if d.Version() == version {
			return d
		}
	}
	return nil
}

// Accept resolves the server's accept reply against the collection: among
// the descriptors matching the accepted version, an exact architecture match
// is preferred, then the highest weight, ties broken by higher version word.
// No match is fatal for the attempt and yields ErrNoCompatibleVersion.
func (c *Collection) Accept(version, arch int32) (Descriptor, error) {
	var best Descriptor
	bestExact := false
	for _, d := range c.descriptors {
		if d.Version() != version {
			continue
		}
		exact := d.Architecture() == arch
		switch {
		case best == nil:
			best, bestExact = d, exact
		case exact && !bestExact:
			best, bestExact = d, exact
		case exact == bestExact && d.Weight() > best.Weight():
			best, bestExact = d, exact
		case exact == bestExact && d.Weight() == best.Weight() && d.Version() > best.Version():
			best, bestExact = d, exact
		}
	}
	if best == nil {
		return nil, ErrNoCompatibleVersion
	}
	return best, nil
}
