package candidate

// OtherCluster is the bucket for records with no reported key skills.
const OtherCluster = "Other"

// GroupBySkill partitions records into clusters keyed by each record's first
// key skill.  Records without key skills land in the OtherCluster bucket.
// Every input record appears in exactly one cluster, and within a cluster the
// input order is preserved.
func GroupBySkill(records []Record) map[string][]Record {
	clusters := make(map[string][]Record)
	for _, r := range records {
		key := r.FirstKeySkill()
		if key == "" {
			key = OtherCluster
		}
		clusters[key] = append(clusters[key], r)
	}
	return clusters
}
