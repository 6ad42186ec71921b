package manifest

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/segmentio/encoding/json"
)

// packageJSON is the subset of package.json the linker's unused-dependency
// analysis needs: a list of manifest-declared dependency names.
// Everything else in the file is ignored.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ReadDependencies reads package.json from projectRoot and returns the
// sorted union of its "dependencies" and "devDependencies" keys. A missing
// file yields an empty, non-error result: a manifestless project still
// analyzes exports, just with no unused-dependency findings.
func ReadDependencies(projectRoot string) ([]string, error) {
	path := filepath.Join(projectRoot, "package.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(pkg.Dependencies)+len(pkg.DevDependencies))

	for name := range pkg.Dependencies {
		names[name] = struct{}{}
	}

	for name := range pkg.DevDependencies {
		names[name] = struct{}{}
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}

	sort.Strings(result)

	return result, nil
}
