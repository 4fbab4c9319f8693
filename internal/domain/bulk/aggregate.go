package bulk

// Aggregate is a parent reconstructed from flat rows sharing one natural key.
// *CatalogItem and *CommerceOrder implement it.
type Aggregate interface {
	// NaturalKey is the business identifier the rows were grouped by
	NaturalKey() string
	// DisplayName is the required scalar name of the parent
	DisplayName() string
	// ChildCount is the number of variants or line items
	ChildCount() int
	// ChildSKUs lists child SKUs in encounter order
	ChildSKUs() []string
}

// Summary is the preview summary of a reconciliation run
type Summary struct {
	TotalRows     int `json:"totalRows"`
	ParentsFound  int `json:"entitiesFound"`
	ChildrenFound int `json:"childrenFound"`
}
