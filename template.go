package rapor

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	expro "github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

// Template engine for WordprocessingML bodies.
// Syntax:
// - {name}, {a.b}, {list[0].name}       scalar placeholder
// - {#list} ... {/list}                  repeating section, or conditional when bound to a scalar
// - {^name} ... {/name}                  inverted section
// - {#if expr} ... {:else} ... {/if}     condition evaluated with expr-lang
// A control tag that is the only text of a <w:p> paragraph stands for the whole paragraph.
// Tags must not be split across runs.

// -----------------------------
// AST
// -----------------------------

type node interface{}

type textNode struct {
	text string
}

type fieldNode struct {
	name   string
	offset int
}

type sectionNode struct {
	name     string
	inverted bool
	offset   int
	children []node
}

type ifNode struct {
	expr      string
	offset    int
	thenNodes []node
	elseNodes []node
}

// Template is a parsed document body plus the package it is written into.
type Template struct {
	id    string
	nodes []node
	pkg   *docxPackage
}

var (
	rxTag        = regexp.MustCompile(`\{([#^/:]?)([^{}]*)\}`)
	rxName       = regexp.MustCompile(`^(\.|[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*|\[[0-9]+\])*)$`)
	rxParagraph  = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?>.*?</w:p>`)
	rxRunText    = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	rxControlTag = regexp.MustCompile(`^\{[#^/:][^{}]*\}$`)
)

// ParseXML parses a complete word/document.xml body. The result is written into a
// minimal DOCX package.
func ParseXML(id string, body []byte) (*Template, error) {
	nodes, err := parseBody(id, string(body))
	if err != nil {
		return nil, err
	}
	return &Template{id: id, nodes: nodes}, nil
}

// ParseDocx parses an existing .docx file. Only word/document.xml is templated,
// every other part is copied through unchanged.
func ParseDocx(id string, data []byte) (*Template, error) {
	pkg, err := readDocx(data)
	if err != nil {
		return nil, errors.Wrapf(err, "template %s", id)
	}
	body, ok := pkg.parts[documentPart]
	if !ok {
		return nil, errors.Errorf("template %s: %s is missing", id, documentPart)
	}
	nodes, err := parseBody(id, string(body))
	if err != nil {
		return nil, err
	}
	return &Template{id: id, nodes: nodes, pkg: pkg}, nil
}

func (t *Template) ID() string { return t.id }

// Execute renders the body against data and returns the packaged document.
func (t *Template) Execute(data map[string]interface{}) ([]byte, error) {
	var b strings.Builder
	if err := t.walk(&b, t.nodes, &scope{current: data}); err != nil {
		return nil, err
	}
	return t.pkg.write([]byte(b.String()))
}

// -----------------------------
// Parser
// -----------------------------

// collapseControlParagraphs replaces every paragraph whose whole text is a single
// control tag with the bare tag, so loops repeat paragraphs instead of leaving
// empty ones behind.
func collapseControlParagraphs(src string) string {
	return rxParagraph.ReplaceAllStringFunc(src, func(p string) string {
		var text strings.Builder
		for _, m := range rxRunText.FindAllStringSubmatch(p, -1) {
			text.WriteString(m[1])
		}
		tag := strings.TrimSpace(text.String())
		if rxControlTag.MatchString(tag) {
			return tag
		}
		return p
	})
}

func parseBody(id, src string) ([]node, error) {
	src = collapseControlParagraphs(src)

	type frame struct {
		kind   string // section | if
		sec    *sectionNode
		in     *ifNode
		target *[]node
	}
	var nodes []node
	var stack []frame

	appendNode := func(n node) {
		if len(stack) == 0 {
			nodes = append(nodes, n)
		} else {
			*stack[len(stack)-1].target = append(*stack[len(stack)-1].target, n)
		}
	}
	syntaxErr := func(offset int, format string, args ...interface{}) error {
		return &TemplateSyntaxError{Template: id, Offset: offset, Msg: fmt.Sprintf(format, args...)}
	}

	last := 0
	for _, m := range rxTag.FindAllStringSubmatchIndex(src, -1) {
		start, end := m[0], m[1]
		kind := src[m[2]:m[3]]
		body := strings.TrimSpace(src[m[4]:m[5]])
		// plain braces that do not name anything stay literal text
		if kind == "" && !rxName.MatchString(body) {
			continue
		}
		if start > last {
			appendNode(&textNode{text: src[last:start]})
		}
		last = end

		switch kind {
		case "":
			appendNode(&fieldNode{name: body, offset: start})
		case "#":
			if body == "if" || strings.HasPrefix(body, "if ") {
				expr := strings.TrimSpace(strings.TrimPrefix(body, "if"))
				if expr == "" {
					return nil, syntaxErr(start, "empty condition")
				}
				in := &ifNode{expr: expr, offset: start, thenNodes: []node{}}
				stack = append(stack, frame{kind: "if", in: in, target: &in.thenNodes})
				continue
			}
			if !rxName.MatchString(body) {
				return nil, syntaxErr(start, "invalid section name %q", body)
			}
			sec := &sectionNode{name: body, offset: start, children: []node{}}
			stack = append(stack, frame{kind: "section", sec: sec, target: &sec.children})
		case "^":
			if !rxName.MatchString(body) {
				return nil, syntaxErr(start, "invalid section name %q", body)
			}
			sec := &sectionNode{name: body, inverted: true, offset: start, children: []node{}}
			stack = append(stack, frame{kind: "section", sec: sec, target: &sec.children})
		case ":":
			if body != "else" {
				return nil, syntaxErr(start, "unknown tag {:%s}", body)
			}
			if len(stack) == 0 || stack[len(stack)-1].kind != "if" {
				return nil, syntaxErr(start, "{:else} outside of {#if}")
			}
			top := &stack[len(stack)-1]
			top.target = &top.in.elseNodes
		case "/":
			if len(stack) == 0 {
				return nil, syntaxErr(start, "unexpected {/%s}", body)
			}
			top := stack[len(stack)-1]
			if body == "if" {
				if top.kind != "if" {
					return nil, syntaxErr(start, "{/if} closes {#%s}", top.sec.name)
				}
				stack = stack[:len(stack)-1]
				appendNode(top.in)
				continue
			}
			if top.kind != "section" || top.sec.name != body {
				return nil, syntaxErr(start, "{/%s} does not match the open block", body)
			}
			stack = stack[:len(stack)-1]
			appendNode(top.sec)
		}
	}
	if last < len(src) {
		appendNode(&textNode{text: src[last:]})
	}
	if len(stack) != 0 {
		top := stack[len(stack)-1]
		if top.kind == "if" {
			return nil, &TemplateSyntaxError{Template: id, Offset: top.in.offset, Msg: "unclosed {#if}"}
		}
		return nil, &TemplateSyntaxError{Template: id, Offset: top.sec.offset, Msg: fmt.Sprintf("unclosed section %q", top.sec.name)}
	}
	return nodes, nil
}

// -----------------------------
// Scopes and path resolution
// -----------------------------

type scope struct {
	current interface{}
	parent  *scope
}

// lookup resolves name against the innermost scope first and walks outwards.
func (s *scope) lookup(name string) (interface{}, bool) {
	if name == "." {
		return s.current, true
	}
	head, rest := splitHead(name)
	for sc := s; sc != nil; sc = sc.parent {
		m, ok := sc.current.(map[string]interface{})
		if !ok {
			continue
		}
		v, ok := m[head]
		if !ok {
			continue
		}
		return drill(v, rest)
	}
	return nil, false
}

// env flattens the scope chain for expression evaluation; inner keys win.
func (s *scope) env() map[string]interface{} {
	var chain []*scope
	for sc := s; sc != nil; sc = sc.parent {
		chain = append(chain, sc)
	}
	env := map[string]interface{}{}
	for i := len(chain) - 1; i >= 0; i-- {
		if m, ok := chain[i].current.(map[string]interface{}); ok {
			for k, v := range m {
				env[k] = v
			}
		}
	}
	return env
}

// splitHead splits "a.b.c" or "a[0].b" into the first key and the remaining path.
func splitHead(path string) (string, string) {
	i := 0
	for i < len(path) && path[i] != '.' && path[i] != '[' {
		i++
	}
	if i < len(path) && path[i] == '.' {
		return path[:i], path[i+1:]
	}
	return path[:i], path[i:]
}

func drill(v interface{}, path string) (interface{}, bool) {
	cur := v
	rest := path
	for rest != "" {
		seg, tail := nextSeg(rest)
		if strings.HasPrefix(seg, "[") {
			arr, ok := cur.([]interface{})
			if !ok {
				return nil, false
			}
			i, err := strconv.Atoi(strings.Trim(seg, "[]"))
			if err != nil || i < 0 || i >= len(arr) {
				return nil, false
			}
			cur = arr[i]
		} else {
			m, ok := cur.(map[string]interface{})
			if !ok {
				return nil, false
			}
			nv, ok := m[seg]
			if !ok {
				return nil, false
			}
			cur = nv
		}
		rest = tail
	}
	return cur, true
}

func nextSeg(path string) (seg string, tail string) {
	if path == "" {
		return "", ""
	}
	if path[0] == '[' {
		if i := strings.Index(path, "]"); i >= 0 {
			seg = path[:i+1]
			if i+1 < len(path) && path[i+1] == '.' {
				tail = path[i+2:]
			} else {
				tail = path[i+1:]
			}
			return
		}
	}
	i := 0
	for i < len(path) && path[i] != '.' && path[i] != '[' {
		i++
	}
	seg = path[:i]
	if i < len(path) && path[i] == '.' {
		tail = path[i+1:]
	} else {
		tail = path[i:]
	}
	return
}

func toString(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		if vv == float64(int64(vv)) {
			return strconv.FormatInt(int64(vv), 10)
		}
		return strconv.FormatFloat(vv, 'f', -1, 64)
	case bool:
		if vv {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", vv)
	}
}

func truthy(v interface{}) bool {
	switch vv := v.(type) {
	case nil:
		return false
	case bool:
		return vv
	case string:
		return vv != ""
	case []interface{}:
		return len(vv) > 0
	case map[string]interface{}:
		return len(vv) > 0
	case float64:
		return vv != 0
	default:
		return true
	}
}

// -----------------------------
// Render
// -----------------------------

const lineBreak = `</w:t><w:br/><w:t xml:space="preserve">`

// writeText escapes s for XML character data and turns newlines into <w:br/>.
func writeText(b *strings.Builder, s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteString(lineBreak)
		}
		var buf bytes.Buffer
		_ = xml.EscapeText(&buf, []byte(line))
		b.Write(buf.Bytes())
	}
}

func (t *Template) walk(b *strings.Builder, nodes []node, sc *scope) error {
	for _, n := range nodes {
		switch nn := n.(type) {
		case *textNode:
			b.WriteString(nn.text)
		case *fieldNode:
			v, ok := sc.lookup(nn.name)
			if !ok {
				return &MissingPlaceholderError{Template: t.id, Name: nn.name}
			}
			switch v.(type) {
			case []interface{}, map[string]interface{}:
				return errors.Errorf("template %s: placeholder {%s} is bound to a collection, use a section", t.id, nn.name)
			}
			writeText(b, toString(v))
		case *sectionNode:
			v, ok := sc.lookup(nn.name)
			if !ok {
				return &MissingPlaceholderError{Template: t.id, Name: nn.name}
			}
			if nn.inverted {
				if !truthy(v) {
					if err := t.walk(b, nn.children, sc); err != nil {
						return err
					}
				}
				continue
			}
			switch vv := v.(type) {
			case []interface{}:
				for _, item := range vv {
					if err := t.walk(b, nn.children, &scope{current: item, parent: sc}); err != nil {
						return err
					}
				}
			case map[string]interface{}:
				if err := t.walk(b, nn.children, &scope{current: vv, parent: sc}); err != nil {
					return err
				}
			default:
				if truthy(vv) {
					if err := t.walk(b, nn.children, sc); err != nil {
						return err
					}
				}
			}
		case *ifNode:
			cond, err := evalBool(sc, nn.expr)
			if err != nil {
				return errors.Wrapf(err, "template %s: condition %q", t.id, nn.expr)
			}
			branch := nn.elseNodes
			if cond {
				branch = nn.thenNodes
			}
			if err := t.walk(b, branch, sc); err != nil {
				return err
			}
		}
	}
	return nil
}

// evalBool evaluates a condition with expr-lang; names resolve against the scope chain.
func evalBool(sc *scope, src string) (bool, error) {
	env := sc.env()
	program, err := expro.Compile(src, expro.Env(env), expro.AllowUndefinedVariables())
	if err != nil {
		return false, err
	}
	out, err := expro.Run(program, env)
	if err != nil {
		return false, err
	}
	if b, ok := out.(bool); ok {
		return b, nil
	}
	return truthy(out), nil
}
