package entity

import "github.com/hrryniu/invoice-ingest/constants"

// Document is an uploaded invoice/receipt awaiting extraction. The byte
// buffer is owned by the submitting call and discarded after extraction;
// nothing in the core retains it.
type Document struct {
	Bytes     []byte
	MediaType constants.MediaType
	Class     constants.DocumentClass
	// Filename is an optional hint, used only for weak class inference
	// when Class is empty and for the result's source description.
	Filename string
}

// ResolveClass returns the declared class, falling back to filename
// inference when the caller did not declare one.
func (d *Document) ResolveClass() constants.DocumentClass {
	if d.Class != "" {
		return d.Class
	}
	return constants.InferDocumentClass(d.Filename)
}
