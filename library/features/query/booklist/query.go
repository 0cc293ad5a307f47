package booklist

const (
	queryType = "BookList"
)

// Query represents the input for listing the catalog.
// It has no parameters, the whole catalog is returned.
type Query struct{}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
