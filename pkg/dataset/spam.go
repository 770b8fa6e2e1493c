package dataset

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Label tokens used by the spam collection.
const (
	LabelSpam = "spam"
	LabelHam  = "ham"
)

// ReadSpamArchive opens the zip archive at path and parses the collection
// file inside. The archive also ships a readme, which is skipped.
func ReadSpamArchive(path string) (labels, texts []string, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: opening spam archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if strings.Contains(strings.ToLower(f.Name), "readme") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("dataset: opening %s in archive: %w", f.Name, err)
		}
		labels, texts, err = ReadSpam(rc)
		rc.Close()
		if err != nil {
			return nil, nil, err
		}
		return labels, texts, nil
	}
	return nil, nil, fmt.Errorf("dataset: no collection file in spam archive")
}

// ReadSpam parses the tab-separated collection: one message per line,
// prefixed with the "spam" or "ham" label token. Lines with an unknown
// label are rejected.
func ReadSpam(r io.Reader) (labels, texts []string, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimRight(sc.Text(), "\r\n")
		if raw == "" {
			continue
		}
		label, text, ok := strings.Cut(raw, "\t")
		if !ok {
			return nil, nil, fmt.Errorf("dataset: spam line %d: no tab separator", line)
		}
		if label != LabelSpam && label != LabelHam {
			return nil, nil, fmt.Errorf("dataset: spam line %d: unknown label %q", line, label)
		}
		labels = append(labels, label)
		texts = append(texts, text)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("dataset: scanning spam collection: %w", err)
	}
	return labels, texts, nil
}
