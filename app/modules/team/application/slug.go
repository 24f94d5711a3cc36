package teamservice

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/uptrace/bun"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallbackSlug is used for names with no ASCII letter or digit.
const fallbackSlug = "team"

// Slugify derives a URL-safe slug from a team name: diacritics are folded,
// letters lowercased and every run of other characters becomes one "-".
func Slugify(name string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// uniqueSlug returns base, or base-2, base-3, ... whichever is first free.
// A slug held by selfID counts as free.
func (s *TeamService) uniqueSlug(ctx context.Context, db bun.IDB, base, selfID string) (string, error) {
	taken, err := s.repo.SlugsWithPrefix(ctx, db, base)
	if err != nil {
		return "", err
	}
	free := func(slug string) bool {
		owner, ok := taken[slug]
		return !ok || (selfID != "" && owner == selfID)
	}
	if free(base) {
		return base, nil
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if free(candidate) {
			return candidate, nil
		}
	}
}
