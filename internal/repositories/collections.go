package repositories

// collections maps a schema shape to its storage collection name. The
// mapping is an explicit table rather than a naming convention so the
// storage layout never silently follows a type rename.
var collections = map[string]string{
	"User":     "user",
	"Product":  "product",
	"CartItem": "cartitem",
}

// CollectionFor returns the storage collection name for a schema shape.
// It panics on an unknown shape, which is always a programming error.
func CollectionFor(shape string) string {
	name, ok := collections[shape]
	if !ok {
		panic("repositories: no collection registered for shape " + shape)
	}
	return name
}

// CollectionNames returns the storage collection names in a stable order,
// as exposed by the GET /schema endpoint.
func CollectionNames() []string {
	return []string{
		collections["User"],
		collections["Product"],
		collections["CartItem"],
	}
}
