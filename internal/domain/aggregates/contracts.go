package aggregates

import "strings"

// WriteTxOwnership says who opens the transaction for a write.
type WriteTxOwnership string

// Writes open and commit their own transaction; callers never pass one in.
const WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"

// ReadPolicy limits which reads an aggregate may perform.
type ReadPolicy string

const (
	// ReadPolicyInvariantScoped allows only the reads needed to decide an invariant inside a write.
	ReadPolicyInvariantScoped ReadPolicy = "invariant_scoped_reads"
	// ReadPolicyTableRepoQueries leaves list and report queries to the table repos and services.
	ReadPolicyTableRepoQueries ReadPolicy = "table_repo_queries"
)

type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	ReadPolicy       ReadPolicy
	Notes            string
}

// Aggregate is implemented by every write boundary.
type Aggregate interface {
	Contract() Contract
}

func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}

// Domain returns the part of Name before the first dot ("Scouting" for "Scouting.EvaluationAggregate").
func (c Contract) Domain() string {
	name := strings.TrimSpace(c.Name)
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}
