package ingestion

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// decodeFunc turns raw document bytes into plain text with line breaks
type decodeFunc func(content []byte) (string, error)

// paragraphBreak marks block boundaries in HTML before source newlines are folded to spaces
const paragraphBreak = "\u2029"

// blockElements are HTML elements that end a line of text
const blockElements = "p, div, section, article, header, footer, li, tr, h1, h2, h3, h4, h5, h6, dt, dd, blockquote, pre, table, ul, ol"

func decodeText(content []byte) (string, error) {
	text := string(bytes.TrimPrefix(content, []byte("\xef\xbb\xbf")))
	return strings.ToValidUTF8(text, "\uFFFD"), nil
}

func decodeHTML(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, head, template").Remove()
	doc.Find("br").ReplaceWithHtml(paragraphBreak)
	doc.Find("li").PrependHtml("- ")
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(paragraphBreak)
	})

	text := doc.Text()
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(text)
	text = strings.ReplaceAll(text, paragraphBreak, "\n")
	return strings.ToValidUTF8(text, "\uFFFD"), nil
}

func decodeDOCX(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docx reader panicked: %v", r)
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return flattenWordXML(doc.Editable().GetContent())
}

// flattenWordXML extracts paragraph text from WordprocessingML, one paragraph per line
func flattenWordXML(documentXML string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))
	var sb strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString(" ")
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(el)
			}
		}
	}

	return sb.String(), nil
}

func decodePDF(content []byte) (text string, err error) {
	// The PDF reader panics on some malformed object streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := pdfPageText(page)
		if err != nil {
			// Keep going: one unreadable page should not discard the rest
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}

// pdfPageText rebuilds lines from positioned text runs, falling back to the plain text stream
func pdfPageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return page.GetPlainText(nil)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	var sb strings.Builder
	for _, row := range rows {
		var prev *pdf.Text
		for i := range row.Content {
			word := row.Content[i]
			if prev != nil && word.X > prev.X+prev.W+0.15*word.FontSize {
				sb.WriteString(" ")
			}
			sb.WriteString(word.S)
			prev = &row.Content[i]
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
