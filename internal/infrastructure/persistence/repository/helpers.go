package repository

// scanner abstracts *sql.Row and *sql.Rows so scan helpers serve both.
type scanner interface {
	Scan(dest ...interface{}) error
}

// nullable maps an empty string to NULL so optional columns stay NULL until
// the workflow fills them in.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
