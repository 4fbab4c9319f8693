package importapp

import "github.com/erp/bulkimport/internal/domain/bulk"

// Summarize counts parents and children of a reconciliation run
func Summarize[P bulk.Aggregate](totalRows int, parents []P) bulk.Summary {
	s := bulk.Summary{TotalRows: totalRows, ParentsFound: len(parents)}
	for i := 0; i < len(parents); i++ {
		if isNilAggregate(parents[i]) {
			continue
		}
		s.ChildrenFound += parents[i].ChildCount()
	}
	return s
}
