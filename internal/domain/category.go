package domain

// Category groups books. Names are unique.
type Category struct {
	ID   int
	Name string
}
