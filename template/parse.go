package template

import (
	"fmt"
	"strings"
)

// Tag delimiters. Fixed, not configurable: every template asset in the
// registry uses the same syntax.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// node is one parsed template element. Rendering walks the node list
// in order.
type node interface{ fragment() }

type (
	// textNode is a literal text run.
	textNode struct {
		text string
	}

	// varNode substitutes the value at a dotted path.
	varNode struct {
		path []string
		raw  string // original spelling, for error messages
	}

	// ifNode renders either branch depending on a boolean in scope.
	ifNode struct {
		path []string
		raw  string
		then []node
		els  []node
	}

	// eachNode renders its body once per element of a sequence.
	eachNode struct {
		path []string
		raw  string
		body []node
	}
)

func (*textNode) fragment() {}
func (*varNode) fragment()  {}
func (*ifNode) fragment()   {}
func (*eachNode) fragment() {}

// ParseError reports a template syntax error with its line number.
type ParseError struct {
	Template string
	Line     int
	Message  string
}

// Error returns the error string.
func (e *ParseError) Error() string {
	return fmt.Sprintf("schemaforge: template %s:%d: %s", e.Template, e.Line, e.Message)
}

// token is one lexed tag or text run.
type token struct {
	kind tokenKind
	text string // tag content (trimmed) or literal text
	line int
}

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenVar            // {{name}}
	tokenIf             // {{#if name}}
	tokenElse           // {{else}}
	tokenEndIf          // {{/if}}
	tokenEach           // {{#each name}}
	tokenEndEach        // {{/each}}
)

// parser builds the node tree from the token stream.
type parser struct {
	name   string
	tokens []token
	pos    int
}

func parse(name, text string) ([]node, error) {
	tokens, err := lex(name, text)
	if err != nil {
		return nil, err
	}
	p := &parser{name: name, tokens: tokens}
	nodes, err := p.block()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		return nil, p.errorf(t.line, "unexpected %s", tagSpelling(t))
	}
	return nodes, nil
}

// block parses nodes until a closing tag ({{else}}, {{/if}}, {{/each}})
// or the end of input. The closing tag is left for the caller.
func (p *parser) block() ([]node, error) {
	var nodes []node
	for p.pos < len(p.tokens) {
		t := p.tokens[p.pos]
		switch t.kind {
		case tokenText:
			p.pos++
			nodes = append(nodes, &textNode{text: t.text})
		case tokenVar:
			p.pos++
			nodes = append(nodes, &varNode{path: splitPath(t.text), raw: t.text})
		case tokenIf:
			p.pos++
			n, err := p.ifBlock(t)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		case tokenEach:
			p.pos++
			n, err := p.eachBlock(t)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		default:
			// Closing tag: belongs to the enclosing block.
			return nodes, nil
		}
	}
	return nodes, nil
}

func (p *parser) ifBlock(open token) (node, error) {
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	n := &ifNode{path: splitPath(open.text), raw: open.text, then: then}
	if p.pos >= len(p.tokens) {
		return nil, p.errorf(open.line, "unclosed {{#if %s}}", open.text)
	}
	if p.tokens[p.pos].kind == tokenElse {
		p.pos++
		if n.els, err = p.block(); err != nil {
			return nil, err
		}
	}
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenEndIf {
		return nil, p.errorf(open.line, "unclosed {{#if %s}}", open.text)
	}
	p.pos++
	return n, nil
}

func (p *parser) eachBlock(open token) (node, error) {
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokenEndEach {
		return nil, p.errorf(open.line, "unclosed {{#each %s}}", open.text)
	}
	p.pos++
	return &eachNode{path: splitPath(open.text), raw: open.text, body: body}, nil
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &ParseError{Template: p.name, Line: line, Message: fmt.Sprintf(format, args...)}
}

// lex splits the template text into text runs and tags. Block tags that
// stand alone on a line consume the line: the surrounding indentation
// and the trailing newline are stripped, so conditional and loop
// markers leave no trace in the output. This normalization is fixed and
// identical across runs.
func lex(name, text string) ([]token, error) {
	var tokens []token
	line := 1
	// atLineStart tracks whether the segment before the next tag begins
	// at a line start: true at input start and after a swallowed line,
	// false right after a tag on an unfinished line.
	atLineStart := true
	for len(text) > 0 {
		open := strings.Index(text, openDelim)
		if open < 0 {
			tokens = append(tokens, token{kind: tokenText, text: text, line: line})
			break
		}
		pre := text[:open]
		rest := text[open+len(openDelim):]
		end := strings.Index(rest, closeDelim)
		if end < 0 {
			return nil, &ParseError{Template: name, Line: line + strings.Count(pre, "\n"), Message: "unclosed tag"}
		}
		content := strings.TrimSpace(rest[:end])
		post := rest[end+len(closeDelim):]

		tagLine := line + strings.Count(pre, "\n")
		kind, arg, err := classify(content)
		if err != nil {
			return nil, &ParseError{Template: name, Line: tagLine, Message: err.Error()}
		}

		// Standalone block tags swallow their line.
		standalone := kind != tokenVar && standaloneBefore(pre, atLineStart) && standaloneAfter(post)
		swallowed := 0
		if standalone {
			pre = trimTrailingIndent(pre)
			trimmed := trimLeadingNewline(post)
			swallowed = strings.Count(post, "\n") - strings.Count(trimmed, "\n")
			post = trimmed
		}
		if pre != "" {
			tokens = append(tokens, token{kind: tokenText, text: pre, line: line})
		}
		tokens = append(tokens, token{kind: kind, text: arg, line: tagLine})
		line = tagLine + strings.Count(rest[:end], "\n") + swallowed
		text = post
		atLineStart = standalone
	}
	return tokens, nil
}

// classify determines the tag kind from its trimmed content.
func classify(content string) (tokenKind, string, error) {
	switch {
	case content == "":
		return 0, "", fmt.Errorf("empty tag")
	case content == "else":
		return tokenElse, "", nil
	case content == "/if":
		return tokenEndIf, "", nil
	case content == "/each":
		return tokenEndEach, "", nil
	case strings.HasPrefix(content, "#if"):
		arg := strings.TrimSpace(strings.TrimPrefix(content, "#if"))
		if arg == "" {
			return 0, "", fmt.Errorf("{{#if}} requires a variable")
		}
		return tokenIf, arg, nil
	case strings.HasPrefix(content, "#each"):
		arg := strings.TrimSpace(strings.TrimPrefix(content, "#each"))
		if arg == "" {
			return 0, "", fmt.Errorf("{{#each}} requires a variable")
		}
		return tokenEach, arg, nil
	case strings.HasPrefix(content, "#") || strings.HasPrefix(content, "/"):
		return 0, "", fmt.Errorf("unknown block tag %q", content)
	default:
		if strings.ContainsAny(content, " \t") {
			return 0, "", fmt.Errorf("invalid variable name %q", content)
		}
		return tokenVar, content, nil
	}
}

func splitPath(s string) []string {
	return strings.Split(s, ".")
}

// standaloneBefore reports if the text before a tag ends at a line
// start (only spaces or tabs since the last newline). A segment with
// no newline only counts when it begins at a line start itself;
// otherwise indentation after an earlier tag on the same line would
// pass for one.
func standaloneBefore(pre string, atLineStart bool) bool {
	i := strings.LastIndexByte(pre, '\n')
	if i < 0 && !atLineStart {
		return false
	}
	return strings.TrimLeft(pre[i+1:], " \t") == ""
}

// standaloneAfter reports if the text after a tag starts with optional
// spaces followed by a newline or the end of input.
func standaloneAfter(post string) bool {
	trimmed := strings.TrimLeft(post, " \t")
	return trimmed == "" || strings.HasPrefix(trimmed, "\n") || strings.HasPrefix(trimmed, "\r\n")
}

func trimTrailingIndent(pre string) string {
	i := strings.LastIndexByte(pre, '\n')
	return pre[:i+1]
}

func trimLeadingNewline(post string) string {
	post = strings.TrimLeft(post, " \t")
	post = strings.TrimPrefix(post, "\r\n")
	post = strings.TrimPrefix(post, "\n")
	return post
}

func tagSpelling(t token) string {
	switch t.kind {
	case tokenElse:
		return "{{else}}"
	case tokenEndIf:
		return "{{/if}}"
	case tokenEndEach:
		return "{{/each}}"
	default:
		return openDelim + t.text + closeDelim
	}
}
