package bidsname

import (
	"path/filepath"
	"regexp"
	"strings"

	billy "github.com/go-git/go-billy/v5"
)

var (
	subDirRe = regexp.MustCompile(`(?:^|[/\\])sub-([^/\\]+)[/\\]`)
	sesDirRe = regexp.MustCompile(`(?:^|[/\\])ses-([^/\\]+)[/\\]`)
)

// MetadataPath returns the path of the JSON sidecar belonging to the data
// file at path: same directory, same stem (up to the first '.'), ".json"
// extension. It reports false when no such file exists on fsys; absence is
// not an error.
func MetadataPath(fsys billy.Basic, path string) (string, bool) {
	dir, base := filepath.Split(path)
	stem := base
	if i := strings.IndexByte(base, '.'); i >= 0 {
		stem = base[:i]
	}
	candidate := fsys.Join(dir, stem+".json")
	if _, err := fsys.Stat(candidate); err != nil {
		return "", false
	}
	return candidate, true
}

// SubjectID extracts the subject identifier from a file path. The basename
// is tried first via the filename grammar; unless nameOnly is set, a
// `sub-<id>/` directory segment anywhere in the path is used as fallback.
// Of several matching segments the one nearest the filename wins, so a
// dataset root that is itself nested under an unrelated sub-* directory
// still resolves to the subject directory inside the dataset. Reports false
// when neither source yields a value.
func SubjectID(path string, nameOnly bool) (string, bool) {
	return pathID(path, "sub", subDirRe, nameOnly)
}

// SessionID is SubjectID for the `ses` entity and `ses-<id>/` directories.
func SessionID(path string, nameOnly bool) (string, bool) {
	return pathID(path, "ses", sesDirRe, nameOnly)
}

func pathID(path, key string, re *regexp.Regexp, nameOnly bool) (string, bool) {
	// Strict parse so a malformed basename falls through silently.
	em, _ := ParseName(filepath.Base(path), ParseOptions{RequireModality: true, Strict: true})
	if v, ok := em.Get(key); ok {
		return v, true
	}
	if nameOnly {
		return "", false
	}
	matches := re.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}
