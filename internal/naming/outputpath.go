package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/pixmaster/internal/config"
)

// RelativePath returns source relative to root. It fails when source does
// not live under root.
func RelativePath(root, source string) (string, error) {
	rel, err := filepath.Rel(root, source)
	if err != nil {
		return "", err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not inside %s", source, root)
	}
	return rel, nil
}

// DestinationPath maps a relative source path onto outputDir.
//
//	skip:   <outputDir>/<rel>                       (unchanged extension)
//	other:  <outputDir>/<rel without ext>.<format>  (e.g. a/b/pic.PNG -> a/b/pic.webp)
func DestinationPath(outputDir, relPath string, format config.Format) string {
	if format == config.FormatSkip {
		return filepath.Join(outputDir, relPath)
	}
	stem := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	return filepath.Join(outputDir, stem+"."+string(format))
}
