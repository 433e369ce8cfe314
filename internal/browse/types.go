package browse

// NodeKey identifies a node inside one snapshot's namespace. Keys are not
// unique across snapshots and must always travel with the snapshot they
// came from.
type NodeKey int64

// RootKey is the synthetic top-of-tree placeholder the backing store reports
// as the parent of everything. It is tree structure, not a real object, and
// must never appear in results. An absent id on the wire also decodes to it.
const RootKey NodeKey = 0

// SnapshotHandle identifies the point-in-time directory tree being browsed.
type SnapshotHandle string

// Kind tags a node as a container or leaf object type.
type Kind string

const (
	KindDomain             Kind = "DOMAIN"
	KindOrganizationalUnit Kind = "ORGANIZATIONAL_UNIT"
	KindContainer          Kind = "CONTAINER"
	KindUser               Kind = "USER"
	KindGroup              Kind = "GROUP"
	KindComputer           Kind = "COMPUTER"
	KindUnknown            Kind = "UNKNOWN"
)

// Node is one raw entity returned by the child-listing primitive. Children
// are not embedded; they are discovered only by listing the node's key.
type Node struct {
	Key               NodeKey `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Kind              Kind    `json:"objectType"`
	DistinguishedName string  `json:"distinguishedName"`
}

// IsContainer reports whether the node may hold children of its own.
func (n Node) IsContainer() bool {
	switch n.Kind {
	case KindDomain, KindOrganizationalUnit, KindContainer:
		return true
	}
	return false
}

// DomainContext carries caller-supplied fields copied verbatim into every
// output record.
type DomainContext struct {
	DomainID   string `json:"domain_id"`
	DomainName string `json:"domain_name"`
}

// ObjectRecord is the flat, caller-facing projection of a Node.
type ObjectRecord struct {
	Key               NodeKey `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Kind              Kind    `json:"object_type"`
	DistinguishedName string  `json:"distinguished_name,omitempty"`
	DomainID          string  `json:"domain_id,omitempty"`
	DomainName        string  `json:"domain_name,omitempty"`
	SnapshotID        string  `json:"snapshot_id"`
}
