package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lixenwraith/mazegen/config"
	"github.com/lixenwraith/mazegen/maze"
)

// prompter asks for settings on an interactive terminal
type prompter struct {
	r   *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), out: out}
}

func (p *prompter) line(prompt string) string {
	fmt.Fprint(p.out, prompt)
	s, _ := p.r.ReadString('\n')
	return strings.TrimSpace(s)
}

func (p *prompter) getInt(prompt string, def int) int {
	s := p.line(prompt)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func (p *prompter) getSeed(prompt string, def int32) int32 {
	s := p.line(prompt)
	if s == "" {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return def
	}
	return int32(v)
}

func (p *prompter) getAlgorithm(prompt, def string) string {
	s := p.line(prompt)
	if s == "" {
		return def
	}
	if _, err := maze.ParseAlgorithm(s); err != nil {
		fmt.Fprintf(p.out, "Unknown algorithm %q, using %s\n", s, def)
		return def
	}
	return s
}

func (p *prompter) confirm(prompt string, def bool) bool {
	switch strings.ToLower(p.line(prompt)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return def
}

// ask fills cfg from the prompts, keeping current values as defaults
func (p *prompter) ask(cfg *config.Config) {
	cfg.Width = p.getInt(fmt.Sprintf("Width [odd preferred] (default %d): ", cfg.Width), cfg.Width)
	cfg.Height = p.getInt(fmt.Sprintf("Height [odd preferred] (default %d): ", cfg.Height), cfg.Height)
	cfg.Algorithm = p.getAlgorithm(fmt.Sprintf("Algorithm %v (default %s): ", maze.Algorithms(), cfg.Algorithm), cfg.Algorithm)
	cfg.Seed = p.getSeed("Seed [0 = random] (default 0): ", 0)
}
