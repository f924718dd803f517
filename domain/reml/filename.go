package reml

import (
	"path/filepath"
	"strings"
)

// CategoryUnknown is the sentinel category for filenames that carry no
// category tag.
const CategoryUnknown = "UNKNOWN"

// ParseFilename decodes a report path following the
// <phenotype>.<category><extension> convention. Phenotype identifiers
// may themselves contain dots, so the split happens at the last dot of
// the extension-stripped base name. A name without any dot falls back
// to the whole name as phenotype and CategoryUnknown as category;
// this is never an error.
func ParseFilename(path, extension string) ParsedFilename {
	name := strings.TrimSuffix(filepath.Base(path), extension)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return ParsedFilename{Phenotype: name[:i], Category: name[i+1:]}
	}
	return ParsedFilename{Phenotype: name, Category: CategoryUnknown}
}
