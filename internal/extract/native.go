// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"runtime/debug"

	"github.com/ledongthuc/pdf"
)

// NativeSource reads the embedded text layer with a pure-Go parser.
// Only the text layer is extracted; scanned (image-only) PDFs produce
// empty pages. The parser panics on some malformed files, so Extract
// converts panics into DecodeErrors carrying the stack.
type NativeSource struct{}

// Extract decodes the PDF at pdfPath page by page. Pages are requested
// in strictly increasing order and no page handle outlives its loop
// iteration; the font cache is shared across pages to avoid re-decoding
// common font programs.
func (NativeSource) Extract(pdfPath string) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DecodeError{
				Reason: fmt.Sprintf("parsing %s: %v", pdfPath, r),
				Stack:  string(debug.Stack()),
			}
		}
	}()

	f, r, oerr := pdf.Open(pdfPath)
	if oerr != nil {
		return Document{}, &DecodeError{Reason: fmt.Sprintf("opening %s: %v", pdfPath, oerr)}
	}
	defer f.Close()

	doc.Metadata = infoDict(r)

	n := r.NumPage()
	doc.Pages = make([]string, 0, n)
	fonts := make(map[string]*pdf.Font)

	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, "")
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, perr := p.GetPlainText(fonts)
		if perr != nil {
			return Document{}, &DecodeError{
				Reason: fmt.Sprintf("reading page %d of %s: %v", i, pdfPath, perr),
			}
		}
		doc.Pages = append(doc.Pages, text)
	}

	return doc, nil
}

// infoDict flattens the trailer's Info dictionary to strings. Keys are
// producer-defined and preserved verbatim, not reinterpreted.
func infoDict(r *pdf.Reader) map[string]string {
	meta := make(map[string]string)
	info := r.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return meta
	}
	for _, k := range info.Keys() {
		v := info.Key(k)
		switch v.Kind() {
		case pdf.String:
			meta[k] = v.Text()
		case pdf.Name:
			meta[k] = v.Name()
		default:
			meta[k] = v.String()
		}
	}
	return meta
}
