// Package render turns a collected result set into terminal or JSON
// output.
package render

import (
	"io"

	"github.com/CrestNiraj12/tootspan/domain"
)

// Input is the full input for a result formatter.
type Input struct {
	Acct    string // account the posts belong to
	Range   domain.DateRange
	Posts   []domain.Post
	Pages   int // pages fetched from the server
	Scanned int // statuses examined before filtering
}

// Formatter writes a formatted result set to w.
type Formatter interface {
	Format(w io.Writer, input Input) error
}
