package reml

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"remltab/internal/errors"
)

// maxComponentValues caps how many value tokens are read per line.
const maxComponentValues = 5

// Parser extracts convergence status and component rows from REML
// report text. The zero value is not usable; construct with NewParser.
type Parser struct {
	naMarker string
}

// NewParser creates a parser that treats naMarker as the missing-data
// token.
func NewParser(naMarker string) *Parser {
	return &Parser{naMarker: naMarker}
}

// ParseFile opens and parses a single report file.
func (p *Parser) ParseFile(path string) (FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileResult{}, errors.IOError("failed to open report file", err)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads report text line by line.
//
// The first line starting with "Converged" supplies the status (its
// second whitespace token); later Converged lines are ignored. The
// first line starting with "Component" opens the value block: every
// non-blank line after it is tokenized as <label> <v1>..<v5>, and
// rows with recognized labels are kept. Malformed numeric tokens and
// short rows degrade to absent values rather than failing the file.
func (p *Parser) Parse(r io.Reader) (FileResult, error) {
	result := FileResult{Components: make(map[string]ComponentRow)}

	convergedSeen := false
	inBlock := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if !convergedSeen && strings.HasPrefix(line, "Converged") {
			convergedSeen = true
			if fields := strings.Fields(line); len(fields) >= 2 {
				result.Converged = fields[1]
			}
		}

		if !inBlock {
			if strings.HasPrefix(line, "Component") {
				inBlock = true
			}
			continue
		}

		label, row, ok := p.parseComponentLine(line)
		if ok && Recognized(label) {
			result.Components[label] = row
		}
	}
	if err := scanner.Err(); err != nil {
		return FileResult{}, errors.IOError("failed to read report text", err)
	}

	return result, nil
}

// parseComponentLine tokenizes one line of the component block. Blank
// lines and lines without at least one value token report ok=false.
func (p *Parser) parseComponentLine(line string) (string, ComponentRow, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", ComponentRow{}, false
	}

	values := make([]*float64, maxComponentValues)
	tokens := fields[1:]
	if len(tokens) > maxComponentValues {
		tokens = tokens[:maxComponentValues]
	}
	for i, tok := range tokens {
		if tok == p.naMarker {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			// Malformed token degrades to missing data.
			continue
		}
		values[i] = &v
	}

	row := ComponentRow{
		Heritability:  values[0],
		SE:            values[1],
		Size:          values[2],
		MegaIntensity: values[3],
		SE2:           values[4],
	}
	return fields[0], row, true
}
