package entity

// Book is a catalog record. Rows are seeded once and never written at runtime.
type Book struct {
	ISBN   string `db:"isbn"`
	Title  string `db:"title"`
	Author string `db:"author"`
	Year   int    `db:"year"`
}
