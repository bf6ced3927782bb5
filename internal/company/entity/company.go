package entity

// Company represents a row in the `companies` table. The handle is the
// primary key and is immutable once created.
type Company struct {
	Handle       string  `db:"handle" json:"handle"`
	Name         string  `db:"name" json:"name"`
	Description  *string `db:"description" json:"description"`
	NumEmployees *int    `db:"num_employees" json:"numEmployees"`
	LogoURL      *string `db:"logo_url" json:"logoUrl"`
}
