package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/alloycomp/internal/composition"
)

// ErrPromptAborted is returned when input ends before a prompt is answered.
var ErrPromptAborted = errors.New("input ended before all values were entered")

// Prompter reads answers to interactive questions line by line. A single
// Prompter must be used for a whole session so buffered input is not lost
// between questions.
type Prompter struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewPrompter creates a Prompter that writes questions to out and reads
// answers from in.
func NewPrompter(out io.Writer, in io.Reader) *Prompter {
	return &Prompter{out: out, scanner: bufio.NewScanner(in)}
}

// readLine prints prompt and returns the trimmed answer.
func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrPromptAborted
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// Direction asks for the conversion direction until a valid answer is given.
// An empty answer selects wt% to at%.
func (p *Prompter) Direction() (composition.Direction, error) {
	fmt.Fprintln(p.out, "Conversion direction:")
	fmt.Fprintln(p.out, "  1) wt% → at%")
	fmt.Fprintln(p.out, "  2) at% → wt%")
	for {
		answer, err := p.readLine("? Choose 1 or 2 [1]: ")
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return composition.WtToAt, nil
		}
		d, err := composition.ParseDirection(answer)
		if err == nil {
			return d, nil
		}
		fmt.Fprintf(p.out, "  %v\n", err)
	}
}

// Composition asks for the percentage of every element of t in table order.
// An empty answer counts as zero. Answers that are not finite, non-negative
// numbers are rejected and the element is asked again.
func (p *Prompter) Composition(t *composition.MassTable, unit composition.Unit) (composition.Composition, error) {
	c := make(composition.Composition, t.Len())
	fmt.Fprintf(p.out, "Enter each element in %s (press Enter for 0):\n", unit.Label())

	for _, sym := range t.Symbols() {
		for {
			answer, err := p.readLine(fmt.Sprintf("  %s: ", sym))
			if err != nil {
				return nil, err
			}
			v, err := parsePromptValue(answer)
			if err != nil {
				fmt.Fprintf(p.out, "  %v\n", err)
				continue
			}
			c[sym] = v
			break
		}
	}
	return c, nil
}

func parsePromptValue(answer string) (float64, error) {
	if answer == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", composition.ErrInvalidValue, answer)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %v", composition.ErrNegativeValue, v)
	}
	return v, nil
}
