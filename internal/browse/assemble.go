package browse

// AssembleRecords projects nodes into caller-facing records, injecting the
// snapshot and domain context into each one. Nodes without a key are dropped
// as malformed. Pure: input order is preserved and nothing is mutated.
func AssembleRecords(snapshot SnapshotHandle, domain DomainContext, nodes []Node) []ObjectRecord {
	records := make([]ObjectRecord, 0, len(nodes))
	for _, node := range nodes {
		if node.Key == RootKey {
			continue
		}
		records = append(records, ObjectRecord{
			Key:               node.Key,
			Name:              node.Name,
			Description:       node.Description,
			Kind:              node.Kind,
			DistinguishedName: node.DistinguishedName,
			DomainID:          domain.DomainID,
			DomainName:        domain.DomainName,
			SnapshotID:        string(snapshot),
		})
	}
	return records
}
