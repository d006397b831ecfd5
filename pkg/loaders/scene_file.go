package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
)

var (
	ErrInvalidPath  = errors.New("invalid scene file path")
	ErrSyntax       = errors.New("scene file syntax error")
	ErrInvalidParam = errors.New("invalid parameter")
)

// maxPathLength bounds the scene file paths accepted by LoadSceneFile
const maxPathLength = 512

// Statement is a single directive such as Camera, Sampler or Shape
type Statement struct {
	Type       string           // Statement type (Camera, Shape, ...)
	Subtype    string           // Quoted subtype (pinhole, sphere, ...)
	Parameters map[string]Param // Named parameters
	Line       int              // Line the statement starts on
}

// Param is a typed parameter with its raw values
type Param struct {
	Type   string   // Parameter type (float, integer, point3, string)
	Values []string // Parameter values as strings
}

// Metadata is read from the header comments of a scene file
type Metadata struct {
	Name        string // "# Scene:" header
	Description string // "# Description:" header
	Group       string // "# Group:" header
}

// SceneFile contains all parsed statements of a scene file
type SceneFile struct {
	Metadata

	// Statements before WorldBegin
	Camera  *Statement
	Sampler *Statement
	Film    *Statement

	// Statements inside WorldBegin/WorldEnd
	Shapes []Statement
}

// sceneParser holds the state of a single parse
type sceneParser struct {
	file           *SceneFile
	inWorld        bool
	worldSeen      bool
	inHeader       bool
	statementLines []string
	statementStart int
}

// ParseSceneFile parses scene file content from an io.Reader
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	parser := &sceneParser{
		file:     &SceneFile{Shapes: make([]Statement, 0)},
		inHeader: true,
	}

	scanner := bufio.NewScanner(reader)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		if err := parser.processLine(scanner.Text(), lineNumber); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading scene file: %w", err)
	}

	if err := parser.finalize(); err != nil {
		return nil, err
	}
	return parser.file, nil
}

// LoadSceneFile loads and parses a scene file from disk
func LoadSceneFile(filename string) (*SceneFile, error) {
	if err := ValidateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sceneFile, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sceneFile, nil
}

// ReadMetadata reads the header comments of a scene file, stopping at the
// first line that is not a comment
func ReadMetadata(reader io.Reader) (Metadata, error) {
	var meta Metadata
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}
		meta.parseComment(line)
	}
	return meta, scanner.Err()
}

func (m *Metadata) parseComment(line string) {
	content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	for _, field := range []struct {
		prefix string
		target *string
	}{
		{"Scene:", &m.Name},
		{"Description:", &m.Description},
		{"Group:", &m.Group},
	} {
		if strings.HasPrefix(content, field.prefix) {
			*field.target = strings.TrimSpace(strings.TrimPrefix(content, field.prefix))
			return
		}
	}
}

// ValidateFilePath checks that a path names a scene file that is safe to open
func ValidateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidPath)
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("%w: null bytes not allowed", ErrInvalidPath)
	}

	cleanPath := filepath.Clean(filename)
	if len(cleanPath) > maxPathLength {
		return fmt.Errorf("%w: maximum %d characters allowed", ErrInvalidPath, maxPathLength)
	}
	if !strings.HasSuffix(strings.ToLower(cleanPath), ".pbrt") {
		return fmt.Errorf("%w: only .pbrt files are allowed", ErrInvalidPath)
	}
	return nil
}

// processLine processes a single line of input
func (p *sceneParser) processLine(line string, lineNumber int) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if strings.HasPrefix(line, "#") {
		if p.inHeader {
			p.file.Metadata.parseComment(line)
		}
		return nil
	}
	p.inHeader = false

	line = stripComment(line)

	switch line {
	case "WorldBegin":
		return p.processWorldBegin(lineNumber)
	case "WorldEnd":
		return p.processWorldEnd(lineNumber)
	}

	if isStatementStart(line) {
		if err := p.flush(); err != nil {
			return err
		}
		p.statementLines = []string{line}
		p.statementStart = lineNumber
		return nil
	}

	if len(p.statementLines) == 0 {
		return fmt.Errorf("%w: line %d: unexpected continuation line: %s", ErrSyntax, lineNumber, line)
	}
	p.statementLines = append(p.statementLines, line)
	return nil
}

func (p *sceneParser) processWorldBegin(lineNumber int) error {
	if err := p.flush(); err != nil {
		return err
	}
	if p.worldSeen {
		return fmt.Errorf("%w: line %d: WorldBegin may appear only once", ErrSyntax, lineNumber)
	}
	p.inWorld = true
	p.worldSeen = true
	return nil
}

func (p *sceneParser) processWorldEnd(lineNumber int) error {
	if err := p.flush(); err != nil {
		return err
	}
	if !p.inWorld {
		return fmt.Errorf("%w: line %d: WorldEnd without WorldBegin", ErrSyntax, lineNumber)
	}
	p.inWorld = false
	return nil
}

// finalize processes any remaining accumulated statement
func (p *sceneParser) finalize() error {
	if err := p.flush(); err != nil {
		return err
	}
	if p.inWorld {
		return fmt.Errorf("%w: missing WorldEnd", ErrSyntax)
	}
	return nil
}

// flush parses the accumulated statement lines and routes the statement
func (p *sceneParser) flush() error {
	if len(p.statementLines) == 0 {
		return nil
	}

	fullStatement := strings.Join(p.statementLines, " ")
	p.statementLines = nil

	stmt, err := parseStatement(fullStatement)
	if err != nil {
		return fmt.Errorf("line %d: '%s': %w", p.statementStart, fullStatement, err)
	}
	stmt.Line = p.statementStart
	return p.route(stmt)
}

// route stores a statement in the section it belongs to
func (p *sceneParser) route(stmt *Statement) error {
	if stmt.Type == "Shape" {
		if !p.inWorld {
			return fmt.Errorf("%w: line %d: Shape outside WorldBegin/WorldEnd", ErrSyntax, stmt.Line)
		}
		p.file.Shapes = append(p.file.Shapes, *stmt)
		return nil
	}

	if p.inWorld {
		return fmt.Errorf("%w: line %d: %s not allowed inside WorldBegin/WorldEnd", ErrSyntax, stmt.Line, stmt.Type)
	}
	switch stmt.Type {
	case "Camera":
		p.file.Camera = stmt
	case "Sampler":
		p.file.Sampler = stmt
	case "Film":
		p.file.Film = stmt
	}
	return nil
}

// stripComment removes a trailing # comment that is not inside quotes
func stripComment(line string) string {
	inQuotes := false
	for i, char := range line {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return line
}

// tokenize splits a line respecting quoted strings and brackets
func tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	inBrackets := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, char := range line {
		switch char {
		case '"':
			current.WriteRune(char)
			if inBrackets {
				continue
			}
			if inQuotes {
				flush()
			}
			inQuotes = !inQuotes
		case '[':
			if !inQuotes {
				flush()
				inBrackets = true
			}
			current.WriteRune(char)
		case ']':
			current.WriteRune(char)
			if !inQuotes && inBrackets {
				flush()
				inBrackets = false
			}
		case ' ', '\t':
			if inQuotes || inBrackets {
				current.WriteRune(char)
			} else {
				flush()
			}
		default:
			current.WriteRune(char)
		}
	}
	flush()

	return tokens
}

// parseStatement parses a complete statement: Type "subtype" "type name" value...
func parseStatement(line string) (*Statement, error) {
	parts := tokenize(line)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: statement needs a quoted subtype", ErrSyntax)
	}

	stmt := &Statement{
		Type:       parts[0],
		Parameters: make(map[string]Param),
	}

	if !isQuoted(parts[1]) {
		return nil, fmt.Errorf("%w: expected quoted subtype, got %s", ErrSyntax, parts[1])
	}
	stmt.Subtype = strings.Trim(parts[1], `"`)
	parts = parts[2:]

	for i := 0; i < len(parts); {
		if !isQuoted(parts[i]) {
			return nil, fmt.Errorf("%w: expected quoted parameter declaration, got %s", ErrSyntax, parts[i])
		}

		paramParts := strings.Fields(strings.Trim(parts[i], `"`))
		if len(paramParts) != 2 {
			return nil, fmt.Errorf("%w: parameter declaration %s must be \"type name\"", ErrSyntax, parts[i])
		}
		i++

		if i >= len(parts) || isQuoted(parts[i]) && !strings.HasPrefix(paramParts[0], "string") {
			return nil, fmt.Errorf("%w: parameter %s has no value", ErrSyntax, paramParts[1])
		}

		var values []string
		if strings.HasPrefix(parts[i], "[") {
			values = strings.Fields(strings.Trim(parts[i], "[] "))
		} else {
			values = []string{parts[i]}
		}
		i++

		stmt.Parameters[paramParts[1]] = Param{
			Type:   paramParts[0],
			Values: values,
		}
	}

	return stmt, nil
}

func isQuoted(token string) bool {
	return len(token) >= 2 && strings.HasPrefix(token, `"`) && strings.HasSuffix(token, `"`)
}

// isStatementStart determines if a line starts a new statement
func isStatementStart(line string) bool {
	for _, stmt := range []string{"Camera", "Sampler", "Film", "Shape"} {
		if strings.HasPrefix(line, stmt+" ") || strings.HasPrefix(line, stmt+"\t") || line == stmt {
			return true
		}
	}
	return false
}

// lookup returns the named parameter and whether it is set. A parameter
// declared with a type other than the accepted ones is an error.
func (stmt *Statement) lookup(name string, types ...string) (Param, bool, error) {
	param, exists := stmt.Parameters[name]
	if !exists {
		return Param{}, false, nil
	}
	if !slices.Contains(types, param.Type) {
		return Param{}, false, fmt.Errorf("%w: %s is declared %q, want %q", ErrInvalidParam, name, param.Type, types[0])
	}
	return param, true, nil
}

// FloatParam returns a float parameter, or def if the statement does not set it
func (stmt *Statement) FloatParam(name string, def float64) (float64, error) {
	param, exists, err := stmt.lookup(name, "float")
	if err != nil || !exists {
		return def, err
	}
	if len(param.Values) != 1 {
		return 0, fmt.Errorf("%w: %s needs 1 value, got %d", ErrInvalidParam, name, len(param.Values))
	}
	val, err := strconv.ParseFloat(param.Values[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
	}
	return val, nil
}

// IntParam returns an integer parameter, or def if the statement does not set it
func (stmt *Statement) IntParam(name string, def int) (int, error) {
	param, exists, err := stmt.lookup(name, "integer")
	if err != nil || !exists {
		return def, err
	}
	if len(param.Values) != 1 {
		return 0, fmt.Errorf("%w: %s needs 1 value, got %d", ErrInvalidParam, name, len(param.Values))
	}
	val, err := strconv.Atoi(param.Values[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
	}
	return val, nil
}

// Point3Param returns a point3 parameter, or def if the statement does not set it
func (stmt *Statement) Point3Param(name string, def core.Vec3) (core.Vec3, error) {
	param, exists, err := stmt.lookup(name, "point3", "point")
	if err != nil || !exists {
		return def, err
	}
	if len(param.Values) != 3 {
		return core.Vec3{}, fmt.Errorf("%w: %s needs 3 values, got %d", ErrInvalidParam, name, len(param.Values))
	}

	var coords [3]float64
	for i, v := range param.Values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
		}
		coords[i] = f
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}

// StringParam returns a string parameter, or def if the statement does not set it
func (stmt *Statement) StringParam(name string, def string) (string, error) {
	param, exists, err := stmt.lookup(name, "string")
	if err != nil || !exists {
		return def, err
	}
	if len(param.Values) != 1 {
		return "", fmt.Errorf("%w: %s needs 1 value, got %d", ErrInvalidParam, name, len(param.Values))
	}
	return strings.Trim(param.Values[0], `"`), nil
}
