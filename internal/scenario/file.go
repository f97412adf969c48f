package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FromFile imports a scenario from disk. The file content is handed to the
// same compile pipeline as every other provider's output.
func FromFile(path string) (*SourceUnit, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".js", ".jsx", ".txt":
	default:
		return nil, fmt.Errorf("unsupported scenario file type %q", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("scenario file %s is empty", path)
	}
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(title, string(data), "Imported from "+path), nil
}
