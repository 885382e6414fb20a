package rapor

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	XlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	documentPart = "word/document.xml"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// docxPackage keeps the parts of a source .docx in their original order.
type docxPackage struct {
	names []string
	parts map[string][]byte
}

func readDocx(data []byte) (*docxPackage, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "open docx")
	}
	pkg := &docxPackage{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "open part %s", f.Name)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "read part %s", f.Name)
		}
		pkg.names = append(pkg.names, f.Name)
		pkg.parts[f.Name] = b
	}
	return pkg, nil
}

// write zips the package with body as word/document.xml. A nil package produces
// the minimal three-part document.
func (p *docxPackage) write(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	put := func(name string, content []byte) error {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return err
		}
		_, err = w.Write(content)
		return err
	}

	if p == nil {
		if err := put("[Content_Types].xml", []byte(contentTypesXML)); err != nil {
			return nil, errors.Wrap(err, "write docx")
		}
		if err := put("_rels/.rels", []byte(packageRelsXML)); err != nil {
			return nil, errors.Wrap(err, "write docx")
		}
		if err := put(documentPart, body); err != nil {
			return nil, errors.Wrap(err, "write docx")
		}
	} else {
		for _, name := range p.names {
			content := p.parts[name]
			if name == documentPart {
				content = body
			}
			if err := put(name, content); err != nil {
				return nil, errors.Wrap(err, "write docx")
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "write docx")
	}
	return buf.Bytes(), nil
}

// ReadDocumentXML returns word/document.xml of a rendered document.
func ReadDocumentXML(docx []byte) ([]byte, error) {
	pkg, err := readDocx(docx)
	if err != nil {
		return nil, err
	}
	body, ok := pkg.parts[documentPart]
	if !ok {
		return nil, errors.Errorf("%s is missing", documentPart)
	}
	return body, nil
}
