package tenant

import (
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	identifierPrefix = "tenant_"
	maxBaseLength    = 20
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	disallowedChar = regexp.MustCompile(`[^a-z0-9_]`)
)

// IdentifierGenerator derives store identifiers from display names.
// The numeric suffix is the current epoch millisecond, bumped so that it
// strictly increases across calls on the same generator.
type IdentifierGenerator struct {
	now  func() time.Time
	last atomic.Int64
}

func NewIdentifierGenerator(now func() time.Time) *IdentifierGenerator {
	if now == nil {
		now = time.Now
	}
	return &IdentifierGenerator{now: now}
}

// Generate returns tenant_<base>_<suffix>, where base is the display name
// lowercased, whitespace runs collapsed to "_", everything outside
// [a-z0-9_] dropped, and cut to 20 characters.
func (g *IdentifierGenerator) Generate(displayName string) string {
	base := strings.ToLower(displayName)
	base = whitespaceRun.ReplaceAllString(base, "_")
	base = disallowedChar.ReplaceAllString(base, "")
	if len(base) > maxBaseLength {
		base = base[:maxBaseLength]
	}
	return identifierPrefix + base + "_" + strconv.FormatInt(g.nextSuffix(), 10)
}

func (g *IdentifierGenerator) nextSuffix() int64 {
	for {
		last := g.last.Load()
		next := g.now().UnixMilli()
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

var defaultGenerator = NewIdentifierGenerator(time.Now)

// GenerateStoreIdentifier uses the process-wide generator.
func GenerateStoreIdentifier(displayName string) string {
	return defaultGenerator.Generate(displayName)
}
