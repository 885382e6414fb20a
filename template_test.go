package rapor_test

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"github.com/nikitaxru/rapor"
)

// TemplateSuite covers the DOCX template engine and the renderer registry.
type TemplateSuite struct {
	suite.Suite
}

func TestTemplateSuite(t *testing.T) {
	suite.Run(t, new(TemplateSuite))
}

const (
	docOpen  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	docClose = `</w:body></w:document>`
)

func para(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + text + `</w:t></w:r></w:p>`
}

func doc(paragraphs ...string) string {
	return docOpen + strings.Join(paragraphs, "") + docClose
}

// render parses body, executes it against data and returns the rendered document.xml.
func (s *TemplateSuite) render(body string, data interface{}) (string, error) {
	t, err := rapor.ParseXML("test", []byte(body))
	s.Require().NoError(err, "parse")
	ctx, err := rapor.ContextMap(data)
	s.Require().NoError(err, "context")
	out, err := t.Execute(ctx)
	if err != nil {
		return "", err
	}
	xml, err := rapor.ReadDocumentXML(out)
	s.Require().NoError(err, "read document.xml")
	return string(xml), nil
}

func (s *TemplateSuite) mustRender(body string, data interface{}) string {
	out, err := s.render(body, data)
	s.Require().NoError(err, "render")
	return out
}

func (s *TemplateSuite) TestPlaceholders() {
	out := s.mustRender(doc(para("{student.name} ({student.id}), {subjects[1].name}, {count}, {avg}")), map[string]interface{}{
		"student":  map[string]interface{}{"name": "Ahmad", "id": "S001"},
		"subjects": []interface{}{map[string]interface{}{"name": "Fiqih"}, map[string]interface{}{"name": "Nahwu"}},
		"count":    3,
		"avg":      87.5,
	})
	s.Contains(out, "Ahmad (S001), Nahwu, 3, 87.5")
}

func (s *TemplateSuite) TestEscapingAndLineBreaks() {
	out := s.mustRender(doc(para("{address}")), map[string]interface{}{"address": "Jl. A & B <3>\nDepok"})
	s.Contains(out, "Jl. A &amp; B &lt;3&gt;</w:t><w:br/><w:t xml:space=\"preserve\">Depok")
}

func (s *TemplateSuite) TestLiteralBracesStay() {
	out := s.mustRender(doc(para("{ not a tag } {name}")), map[string]interface{}{"name": "x"})
	s.Contains(out, "{ not a tag } x")
}

func (s *TemplateSuite) TestParagraphLoop() {
	body := doc(
		para("Siswa:"),
		para("{#students}"),
		para("{no}. {name} - {class}"),
		para("{/students}"),
		para("Selesai"),
	)
	out := s.mustRender(body, map[string]interface{}{
		"class": "7A",
		"students": []interface{}{
			map[string]interface{}{"no": 1, "name": "Ahmad"},
			map[string]interface{}{"no": 2, "name": "Zahra"},
		},
	})
	s.Contains(out, "1. Ahmad - 7A")
	s.Contains(out, "2. Zahra - 7A")
	// control paragraphs vanish: header, two rows, footer
	s.Equal(4, strings.Count(out, "<w:p>"))
	s.NotContains(out, "students")
}

func (s *TemplateSuite) TestEmptyLoop() {
	body := doc(para("{#rows}"), para("{x}"), para("{/rows}"), para("total={total}"))
	out := s.mustRender(body, map[string]interface{}{"rows": []interface{}{}, "total": 0})
	s.Equal(1, strings.Count(out, "<w:p>"))
	s.Contains(out, "total=0")
}

func (s *TemplateSuite) TestTableRowLoop() {
	row := `<w:tr><w:tc>` + para("{subject}") + `</w:tc><w:tc>` + para("{score}") + `</w:tc></w:tr>`
	body := docOpen + `<w:tbl>{#grades}` + row + `{/grades}</w:tbl>` + docClose
	out := s.mustRender(body, map[string]interface{}{
		"grades": []interface{}{
			map[string]interface{}{"subject": "Fiqih", "score": 80},
			map[string]interface{}{"subject": "Nahwu", "score": 95.5},
		},
	})
	s.Equal(2, strings.Count(out, "<w:tr>"))
	s.Contains(out, ">95.5<")
}

func (s *TemplateSuite) TestInvertedAndScalarSections() {
	body := doc(
		para("{#monday}"), para("{subject}"), para("{/monday}"),
		para("{^monday}"), para("-"), para("{/monday}"),
		para("{#active}aktif{/active}{^active}nonaktif{/active}"),
	)
	out := s.mustRender(body, map[string]interface{}{"monday": []interface{}{}, "active": true})
	s.Contains(out, ">-<")
	s.Contains(out, ">aktif<")
	s.NotContains(out, "nonaktif")
}

func (s *TemplateSuite) TestIfElse() {
	body := doc(para("{#if score >= 75}LULUS{:else}REMEDIAL{/if}"))
	s.Contains(s.mustRender(body, map[string]interface{}{"score": 80}), "LULUS")
	s.Contains(s.mustRender(body, map[string]interface{}{"score": 60}), "REMEDIAL")

	// conditions see loop items and enclosing values
	loop := doc(para("{#items}{#if qty > limit}{name}!{/if}{/items}"))
	out := s.mustRender(loop, map[string]interface{}{
		"limit": 2,
		"items": []interface{}{
			map[string]interface{}{"name": "a", "qty": 1},
			map[string]interface{}{"name": "b", "qty": 3},
		},
	})
	s.Contains(out, ">b!<")
	s.NotContains(out, "a!")
}

func (s *TemplateSuite) TestMissingPlaceholder() {
	_, err := s.render(doc(para("{student_name} {missing}")), map[string]interface{}{"student_name": "x"})
	var mpe *rapor.MissingPlaceholderError
	s.Require().True(errors.As(err, &mpe), "got %v", err)
	s.Equal("missing", mpe.Name)
	s.Equal("test", mpe.Template)

	_, err = s.render(doc(para("{#rows}{x}{/rows}")), map[string]interface{}{})
	s.True(errors.As(err, &mpe))
	s.Equal("rows", mpe.Name)
}

func (s *TemplateSuite) TestCollectionInPlaceholder() {
	_, err := s.render(doc(para("{rows}")), map[string]interface{}{"rows": []interface{}{1}})
	s.Error(err)
}

func (s *TemplateSuite) TestSyntaxErrors() {
	cases := map[string]string{
		"unclosed section":  doc(para("{#rows}")),
		"mismatched close":  doc(para("{#rows}{/cols}")),
		"stray close":       doc(para("{/rows}")),
		"unclosed if":       doc(para("{#if x}")),
		"else outside if":   doc(para("{#rows}{:else}{/rows}")),
		"empty condition":   doc(para("{#if}{/if}")),
		"bad section name":  doc(para("{#1rows}{/1rows}")),
		"if closes section": doc(para("{#rows}{/if}")),
	}
	for name, body := range cases {
		_, err := rapor.ParseXML("broken", []byte(body))
		var se *rapor.TemplateSyntaxError
		s.True(errors.As(err, &se), name)
		if se != nil {
			s.Equal("broken", se.Template, name)
		}
	}
}

// docxWith zips the given parts into a .docx archive.
func (s *TemplateSuite) docxWith(parts map[string]string, order []string) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		s.Require().NoError(err)
		_, err = io.WriteString(w, parts[name])
		s.Require().NoError(err)
	}
	s.Require().NoError(zw.Close())
	return buf.Bytes()
}

func (s *TemplateSuite) TestParseDocxKeepsOtherParts() {
	styles := `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"/>`
	src := s.docxWith(map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/styles.xml":     styles,
		"word/document.xml":   doc(para("Halo {name}")),
	}, []string{"[Content_Types].xml", "word/styles.xml", "word/document.xml"})

	t, err := rapor.ParseDocx("greeting", src)
	s.Require().NoError(err)
	s.Equal("greeting", t.ID())
	out, err := t.Execute(map[string]interface{}{"name": "Zahra"})
	s.Require().NoError(err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	s.Require().NoError(err)
	got := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		s.Require().NoError(err)
		b, err := io.ReadAll(rc)
		rc.Close()
		s.Require().NoError(err)
		got[f.Name] = string(b)
	}
	s.Len(got, 3)
	s.Equal(styles, got["word/styles.xml"])
	s.Contains(got["word/document.xml"], "Halo Zahra")
}

func (s *TemplateSuite) TestParseDocxErrors() {
	_, err := rapor.ParseDocx("x", []byte("not a zip"))
	s.Error(err)

	noBody := s.docxWith(map[string]string{"word/styles.xml": "<x/>"}, []string{"word/styles.xml"})
	_, err = rapor.ParseDocx("x", noBody)
	s.Error(err)
}

func (s *TemplateSuite) TestMinimalPackage() {
	t, err := rapor.ParseXML("plain", []byte(doc(para("x"))))
	s.Require().NoError(err)
	out, err := t.Execute(map[string]interface{}{})
	s.Require().NoError(err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	s.Require().NoError(err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	s.Equal([]string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)
}

func (s *TemplateSuite) TestRendererBuiltins() {
	r, err := rapor.NewDefaultRenderer(nil)
	s.Require().NoError(err)
	for _, id := range []string{rapor.TemplateReportCard, rapor.TemplateClassList, rapor.TemplateAttendance, rapor.TemplateTeacherSchedule} {
		_, ok := r.Lookup(id)
		s.True(ok, id)
	}

	_, err = r.Render("unknown", map[string]interface{}{})
	s.True(errors.Is(err, rapor.ErrTemplateNotFound))

	_, err = r.Render(rapor.TemplateClassList, []string{"not", "an", "object"})
	s.Error(err)
}

func (s *TemplateSuite) TestRendererStructContext() {
	type line struct {
		Name string `json:"name"`
	}
	type ctx struct {
		Title string `json:"title"`
		Lines []line `json:"lines"`
	}
	r := rapor.NewRenderer(nil)
	t, err := rapor.ParseXML("lines", []byte(doc(para("{title}"), para("{#lines}"), para("- {name}"), para("{/lines}"))))
	s.Require().NoError(err)
	r.Register(t)

	out, err := r.Render("lines", ctx{Title: "Daftar", Lines: []line{{"a"}, {"b"}}})
	s.Require().NoError(err)
	xml, err := rapor.ReadDocumentXML(out)
	s.Require().NoError(err)
	s.Contains(string(xml), "- a")
	s.Contains(string(xml), "- b")
}

func (s *TemplateSuite) TestRendererLoadDir() {
	dir := s.T().TempDir()
	src := s.docxWith(map[string]string{
		"word/document.xml": doc(para("Override {class_name}")),
	}, []string{"word/document.xml"})
	s.Require().NoError(os.WriteFile(filepath.Join(dir, rapor.TemplateClassList+".docx"), src, 0o600))
	s.Require().NoError(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	r, err := rapor.NewDefaultRenderer(nil)
	s.Require().NoError(err)
	n, err := r.LoadDir(dir)
	s.Require().NoError(err)
	s.Equal(1, n)

	out, err := r.Render(rapor.TemplateClassList, map[string]interface{}{"class_name": "7A"})
	s.Require().NoError(err)
	xml, err := rapor.ReadDocumentXML(out)
	s.Require().NoError(err)
	s.Contains(string(xml), "Override 7A")
}
