package domain

// Building represents the root of the building -> floor -> room hierarchy
type Building struct {
	ID      int64
	Name    string
	Address string
}

// String returns the display name of the building
func (b *Building) String() string {
	return b.Name
}
