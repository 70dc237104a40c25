// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// medlineRecord maps a MEDLINE tag (e.g. "TI", "AU") to its values in file
// order. Repeatable tags such as AU keep one entry per line group.
type medlineRecord map[string][]string

// all returns every value recorded for tag.
func (r medlineRecord) all(tag string) []string {
	return r[tag]
}

// text returns the values for tag joined by a single space.
func (r medlineRecord) text(tag string) string {
	return strings.Join(r[tag], " ")
}

// parseMedline reads the MEDLINE display format returned by efetch with
// rettype=medline. Each field starts with a four-character, space-padded tag
// followed by "- "; lines indented by six spaces continue the previous
// field; blank lines separate records. Lines that fit neither shape are
// ignored.
func parseMedline(r io.Reader) ([]medlineRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		records []medlineRecord
		current = medlineRecord{}
		tag     string
	)
	flush := func() {
		if len(current) > 0 {
			records = append(records, current)
		}
		current = medlineRecord{}
		tag = ""
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "      "):
			vals := current[tag]
			if tag == "" || len(vals) == 0 {
				continue
			}
			vals[len(vals)-1] += " " + strings.TrimSpace(line)
		case len(line) >= 5 && line[4] == '-':
			tag = strings.TrimSpace(line[:4])
			value := ""
			if len(line) > 6 {
				value = line[6:]
			}
			current[tag] = append(current[tag], value)
		}
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("reading MEDLINE text: %w", err)
	}
	flush()
	return records, nil
}
