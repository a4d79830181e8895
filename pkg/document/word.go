// FILE: pkg/document/word.go
// PURPOSE: Render finalized cover letter text into a downloadable .docx artifact

package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Artifact identifies one rendered document on disk and its download URL.
type Artifact struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Path      string    `json:"filepath"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// WordRenderer writes minimal OOXML documents. A dedicated docx library is
// overkill for a fixed single-style letter; the three-part zip below is the
// whole format surface this service needs.
type WordRenderer struct {
	outputDir string
	baseURL   string
}

func NewWordRenderer(outputDir, baseURL string) *WordRenderer {
	return &WordRenderer{
		outputDir: outputDir,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Render writes the letter to disk as
// 자기소개서_<position>_<YYYYMMDD_HHMMSS>.docx and returns the artifact
// handle. The timestamp suffix keeps names collision-free under the
// single-user serial usage this service assumes.
func (r *WordRenderer) Render(text, position string) (*Artifact, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	now := time.Now()
	token := SanitizeFilenameToken(position)
	if token == "" {
		token = "자기소개서"
	}
	filename := fmt.Sprintf("자기소개서_%s_%s.docx", token, now.Format("20060102_150405"))
	path := filepath.Join(r.outputDir, filename)

	payload, err := buildDocx(text)
	if err != nil {
		return nil, fmt.Errorf("build docx: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}

	return &Artifact{
		Id:        uuid.New(),
		Filename:  filename,
		Path:      path,
		URL:       r.baseURL + "/files/resumes/" + url.PathEscape(filename),
		CreatedAt: now,
	}, nil
}

// SanitizeFilenameToken keeps letters, digits, spaces, hyphens and
// underscores, dropping everything else. Korean letters pass through.
func SanitizeFilenameToken(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const documentFooter = `<w:sectPr/></w:body></w:document>`

// Run properties: 맑은 고딕, 11pt body / 20pt heading (half-points).
const (
	headingRunProps = `<w:rPr><w:rFonts w:ascii="맑은 고딕" w:eastAsia="맑은 고딕"/><w:b/><w:sz w:val="40"/></w:rPr>`
	bodyRunProps    = `<w:rPr><w:rFonts w:ascii="맑은 고딕" w:eastAsia="맑은 고딕"/><w:sz w:val="22"/></w:rPr>`
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func buildDocx(text string) ([]byte, error) {
	var body strings.Builder
	body.WriteString(documentHeader)

	body.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r>`)
	body.WriteString(headingRunProps)
	body.WriteString(`<w:t>자기소개서</w:t></w:r></w:p>`)
	body.WriteString(`<w:p/>`)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			body.WriteString(`<w:p/>`)
			continue
		}
		body.WriteString(`<w:p><w:r>`)
		body.WriteString(bodyRunProps)
		body.WriteString(`<w:t xml:space="preserve">`)
		body.WriteString(xmlEscaper.Replace(line))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(documentFooter)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", body.String()},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
