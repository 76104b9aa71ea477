package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Claims records which source owns each destination within one run, so two
// sources never write the same file. Keys are case-folded because pic.png and
// Pic.PNG land on the same file on case-insensitive filesystems.
type Claims struct {
	owner map[string]string // folded destination -> source
}

// NewClaims returns an empty claim set.
func NewClaims() *Claims {
	return &Claims{owner: make(map[string]string)}
}

// Claim returns the destination source should write. The first source to
// ask for dest gets it unchanged. A later source gets "<stem> - dupN<ext>"
// with the lowest N still free, and renamed is true. Asking again for a path
// already owned by source is a no-op.
func (c *Claims) Claim(source, dest string) (final string, renamed bool) {
	if c.take(source, dest) {
		return dest, false
	}
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s - dup%d%s", stem, n, ext)
		if c.take(source, candidate) {
			return candidate, true
		}
	}
}

// Len reports how many destinations are claimed.
func (c *Claims) Len() int { return len(c.owner) }

func (c *Claims) take(source, dest string) bool {
	key := strings.ToLower(dest)
	if owner, ok := c.owner[key]; ok && owner != source {
		return false
	}
	c.owner[key] = source
	return true
}
