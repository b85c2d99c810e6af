// Package phrasefile reads and writes tab-separated phrase lists.
//
// Each non-empty line holds one phrase as "source<TAB>target". Lines starting
// with '#' are comments.
package phrasefile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/phrasedrill/internal/model"
)

// Load reads phrases from the file at path.
func Load(path string) ([]model.Phrase, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only phrase file.
			_ = cerr
		}
	}()
	return Parse(file)
}

// Parse reads phrases from r. It fails on the first malformed line.
func Parse(r io.Reader) ([]model.Phrase, error) {
	var phrases []model.Phrase
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		source, target, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("line %d: expected source and target separated by a tab", lineNo)
		}
		p := model.Phrase{Source: strings.TrimSpace(source), Target: strings.TrimSpace(target)}
		if p.Blank() {
			return nil, fmt.Errorf("line %d: source and target must not be empty", lineNo)
		}
		phrases = append(phrases, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(phrases) == 0 {
		return nil, fmt.Errorf("phrase file is empty")
	}
	return phrases, nil
}

// Write prints phrases in the format Parse reads.
func Write(w io.Writer, phrases []model.Phrase) error {
	bw := bufio.NewWriter(w)
	for _, p := range phrases {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", flatten(p.Source), flatten(p.Target)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
