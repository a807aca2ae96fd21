// Package monomer holds the per-monomer state the move engine reads and
// writes: lattice-integer positions, the packed neighbor-count tag byte,
// the per-sweep flag byte, and bounded CSR-like adjacency.
//
// Position width is a compile-time choice (spec §9 "Polymorphism over
// integer width"): Store is generic over Coord, so callers pick int16 for
// memory-constrained runs or int32 for larger boxes without a second code
// path.
package monomer

import "github.com/lgh0504/pscbfm-go/bfmerr"

// Coord constrains the position element type to the two widths the spec
// calls sufficient: 16-bit is sufficient, 32-bit acceptable.
type Coord interface {
	~int16 | ~int32
}

// MaxConnectivity is the maximum number of bonded neighbors any monomer may
// have (spec §3 "Adjacency").
const MaxConnectivity = 7

// Tag bit layout within the packed attribute byte (spec §3 "Monomer"):
// bits 0-4 unused by the engine, bits 5-7 = neighbor count k in [0,7].
const tagNeighborShift = 5

// Flag bit layout within the per-sweep flag byte (spec §3 "Monomer"):
// bit 0 = accepted by check-phase, bit 1 = accepted by commit-phase,
// bits 2-4 = chosen direction index.
const (
	FlagCheckAccepted  byte = 1 << 0
	FlagCommitAccepted byte = 1 << 1
	flagDirShift            = 2
	flagDirMask             = 0x7
)

// Store holds the original-index-order monomer attributes: positions,
// attribute tags, per-sweep flags, and bounded adjacency. It is populated
// during staging (spec §6) and frozen at Initialize.
type Store[C Coord] struct {
	n int

	x, y, z []C
	tag     []byte // neighbor count packed into bits 5-7
	flags   []byte // per-sweep scratch: accept bits + direction

	// neighbors[i] holds up to MaxConnectivity neighbor indices for monomer i.
	neighbors [][MaxConnectivity]int32
	degree    []int8
}

// NewStore allocates a Store for n monomers with zeroed positions and empty
// adjacency (spec §6 SetNumMonomers: "allocates attribute array and
// zero-inits adjacency").
func NewStore[C Coord](n int) *Store[C] {
	return &Store[C]{
		n:         n,
		x:         make([]C, n),
		y:         make([]C, n),
		z:         make([]C, n),
		tag:       make([]byte, n),
		flags:     make([]byte, n),
		neighbors: make([][MaxConnectivity]int32, n),
		degree:    make([]int8, n),
	}
}

// Len returns the number of monomers.
func (s *Store[C]) Len() int { return s.n }

// SetPosition stages the position of monomer i.
func (s *Store[C]) SetPosition(i int, x, y, z C) {
	s.x[i], s.y[i], s.z[i] = x, y, z
}

// Position returns the position of monomer i.
func (s *Store[C]) Position(i int) (x, y, z C) {
	return s.x[i], s.y[i], s.z[i]
}

// PositionInt returns the position of monomer i widened to int, for
// arithmetic against the lattice's int-indexed Box.
func (s *Store[C]) PositionInt(i int) (x, y, z int) {
	return int(s.x[i]), int(s.y[i]), int(s.z[i])
}

// Move applies (dx,dy,dz) to monomer i's stored position (spec §4.5 Phase C).
func (s *Store[C]) Move(i int, dx, dy, dz int) {
	s.x[i] += C(dx)
	s.y[i] += C(dy)
	s.z[i] += C(dz)
}

// NeighborCount returns k, the number of bonded neighbors of monomer i.
func (s *Store[C]) NeighborCount(i int) int { return int(s.degree[i]) }

// Neighbors returns the neighbor index slice of monomer i (length
// NeighborCount(i), backed by the fixed-size array — callers must not
// retain it past the next AddBond on i).
func (s *Store[C]) Neighbors(i int) []int32 {
	return s.neighbors[i][:s.degree[i]]
}

// AddBond records an undirected bond between i and j: both adjacency lists
// gain the other's index (spec §3 "Adjacency": bonds are undirected). Fails
// with bfmerr.ErrNeighborOverflow if either endpoint already has
// MaxConnectivity neighbors.
func (s *Store[C]) AddBond(i, j int) error {
	if err := s.addDirected(i, j); err != nil {
		return err
	}
	if err := s.addDirected(j, i); err != nil {
		// roll back the half-added bond so retries start clean.
		s.removeDirected(i, j)
		return err
	}
	return nil
}

func (s *Store[C]) addDirected(from, to int) error {
	d := s.degree[from]
	if int(d) >= MaxConnectivity {
		return bfmerr.Configuration("AddBond", bfmerr.ErrNeighborOverflow)
	}
	s.neighbors[from][d] = int32(to)
	s.degree[from] = d + 1
	s.tag[from] = (s.tag[from] &^ (0x7 << tagNeighborShift)) | byte(d+1)<<tagNeighborShift
	return nil
}

func (s *Store[C]) removeDirected(from, to int) {
	nbrs := s.neighbors[from]
	d := int(s.degree[from])
	for k := 0; k < d; k++ {
		if nbrs[k] == int32(to) {
			for m := k; m < d-1; m++ {
				nbrs[m] = nbrs[m+1]
			}
			s.degree[from]--
			s.neighbors[from] = nbrs
			s.tag[from] = (s.tag[from] &^ (0x7 << tagNeighborShift)) | byte(s.degree[from])<<tagNeighborShift
			return
		}
	}
}

// SetAttribute stages a caller-defined attribute for monomer i into the
// unused low 5 bits of the tag byte (spec §3: "bits 0-4 unused by the
// engine"). The engine never interprets these bits.
func (s *Store[C]) SetAttribute(i int, a byte) {
	s.tag[i] = (s.tag[i] &^ 0x1f) | (a & 0x1f)
}

// Attribute returns the caller-defined low-5-bit attribute of monomer i.
func (s *Store[C]) Attribute(i int) byte { return s.tag[i] & 0x1f }

// Flags returns the per-sweep flag byte of monomer i.
func (s *Store[C]) Flags(i int) byte { return s.flags[i] }

// SetFlags overwrites the per-sweep flag byte of monomer i.
func (s *Store[C]) SetFlags(i int, f byte) { s.flags[i] = f }

// ClearFlags zeroes the per-sweep flag byte of monomer i.
func (s *Store[C]) ClearFlags(i int) { s.flags[i] = 0 }

// EncodeAccept packs "accepted by check-phase, direction d" into a flag byte.
func EncodeAccept(d int) byte {
	return FlagCheckAccepted | byte(d&flagDirMask)<<flagDirShift
}

// DecodeDirection extracts the chosen direction index from a flag byte.
func DecodeDirection(flags byte) int {
	return int((flags >> flagDirShift) & flagDirMask)
}

// Accepted reports whether the check-phase accepted the proposal (flag bit 0).
func Accepted(flags byte) bool { return flags&FlagCheckAccepted != 0 }

// Committed reports whether both phases accepted the proposal (flag bits 0 and 1).
func Committed(flags byte) bool {
	return flags&(FlagCheckAccepted|FlagCommitAccepted) == FlagCheckAccepted|FlagCommitAccepted
}

// Mirror is an owned host/device pair of a Store's bulk arrays, re-expressing
// the source's dual-buffer pattern (spec §9 "Host/device mirror") as an
// explicit push/pop contract instead of implicit coherency. This Go port
// runs entirely on the host, so SyncToDevice/SyncFromDevice are deliberate
// no-ops: the "device" mirror is reserved for a future GPU backend, and the
// explicit calls document exactly where a real transfer would be inserted.
type Mirror[C Coord] struct {
	host *Store[C]
}

// NewMirror wraps host as the authoritative host-resident Store.
func NewMirror[C Coord](host *Store[C]) *Mirror[C] {
	return &Mirror[C]{host: host}
}

// Host returns the host-resident Store.
func (m *Mirror[C]) Host() *Store[C] { return m.host }

// SyncToDevice is a no-op hook marking where a host->device transfer would
// occur; see the package doc comment.
func (m *Mirror[C]) SyncToDevice() {}

// SyncFromDevice is a no-op hook marking where a device->host transfer
// would occur; see the package doc comment.
func (m *Mirror[C]) SyncFromDevice() {}
