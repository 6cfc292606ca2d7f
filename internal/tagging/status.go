package tagging

import (
	"path/filepath"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/ignore"
)

type Status struct {
	Total        int         `json:"total"`
	Classified   int         `json:"classified"`
	Unclassified int         `json:"unclassified"`
	Invalid      int         `json:"invalid"`
	Problems     []FileError `json:"problems,omitempty"`
}

// CorpusStatus reports how much of dir is tagged. It never writes.
func CorpusStatus(dir string, matcher *ignore.Matcher) (Status, error) {
	files, err := ListCaseFiles(dir, matcher)
	if err != nil {
		return Status{}, err
	}

	status := Status{Total: len(files)}
	for _, name := range files {
		doc, err := casefile.Read(filepath.Join(dir, name))
		switch {
		case err != nil:
			status.Invalid++
			status.Problems = append(status.Problems, FileError{File: name, Error: err.Error()})
		case doc.IsClassified():
			status.Classified++
		default:
			status.Unclassified++
		}
	}
	return status, nil
}
