package constant

const (
	ServiceName = "Mergington High School API"

	// StaticIndexPath is where GET / redirects to.
	StaticIndexPath = "/static/index.html"
)
