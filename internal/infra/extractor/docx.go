package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxDocumentXMLSize caps the decompressed main document part.
const maxDocumentXMLSize = 64 << 20

// docxText returns the body paragraphs of a DOCX package, one per line,
// followed by the rows of every top-level table. Cells are space-joined and
// rows newline-terminated.
func docxText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx package: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", errors.New("docx package has no word/document.xml")
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open document part: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	return parseDocumentXML(io.LimitReader(rc, maxDocumentXMLSize))
}

func parseDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var paragraphs, rows []string
	foundBody := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document xml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "body" {
			continue
		}
		foundBody = true
		var block func(xml.StartElement) error
		block = func(child xml.StartElement) error {
			switch child.Name.Local {
			case "p":
				p, err := readParagraph(dec)
				paragraphs = append(paragraphs, p)
				return err
			case "tbl":
				tableRows, err := readTable(dec)
				rows = append(rows, tableRows...)
				return err
			case "sdt", "sdtContent", "customXml":
				// content controls and custom XML wrap ordinary blocks
				return eachChild(dec, block, nil)
			default:
				return dec.Skip()
			}
		}
		err = eachChild(dec, block, nil)
		if err != nil {
			return "", fmt.Errorf("parse document body: %w", err)
		}
	}
	if !foundBody {
		return "", errors.New("document has no body")
	}

	var sb strings.Builder
	for _, p := range paragraphs {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	for _, row := range rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// eachChild calls fn for every child element of the element whose start tag
// was just read, and returns after its end tag. fn must consume the child.
// text, when set, receives character data directly inside the element.
func eachChild(dec *xml.Decoder, fn func(xml.StartElement) error, text func(xml.CharData)) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		case xml.CharData:
			if text != nil {
				text(t)
			}
		}
	}
}

func skip(dec *xml.Decoder) func(xml.StartElement) error {
	return func(xml.StartElement) error { return dec.Skip() }
}

// readParagraph returns the text of a w:p element.
func readParagraph(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	var walk func(xml.StartElement) error
	walk = func(se xml.StartElement) error {
		switch se.Name.Local {
		case "t":
			return eachChild(dec, skip(dec), func(cd xml.CharData) { sb.Write(cd) })
		case "tab":
			sb.WriteByte('\t')
			return dec.Skip()
		case "br", "cr":
			sb.WriteByte('\n')
			return dec.Skip()
		case "delText", "instrText":
			return dec.Skip()
		default:
			return eachChild(dec, walk, nil)
		}
	}
	err := eachChild(dec, walk, nil)
	return sb.String(), err
}

// readTable returns one line per w:tr of a w:tbl element.
func readTable(dec *xml.Decoder) ([]string, error) {
	var rows []string
	err := eachChild(dec, func(se xml.StartElement) error {
		if se.Name.Local != "tr" {
			return dec.Skip()
		}
		row, err := readRow(dec)
		rows = append(rows, row)
		return err
	}, nil)
	return rows, err
}

func readRow(dec *xml.Decoder) (string, error) {
	var cells []string
	err := eachChild(dec, func(se xml.StartElement) error {
		if se.Name.Local != "tc" {
			return dec.Skip()
		}
		var paras []string
		err := eachChild(dec, func(inner xml.StartElement) error {
			if inner.Name.Local != "p" {
				return dec.Skip()
			}
			p, err := readParagraph(dec)
			paras = append(paras, p)
			return err
		}, nil)
		cells = append(cells, strings.Join(paras, "\n"))
		return err
	}, nil)
	return strings.Join(cells, " "), err
}
