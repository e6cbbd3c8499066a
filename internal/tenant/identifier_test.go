package tenant

import (
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/tenant-backend/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var identifierShape = regexp.MustCompile(`^[a-z0-9_]+$`)

func TestGenerate_Shape(t *testing.T) {
	g := NewIdentifierGenerator(time.Now)

	tests := []struct {
		name     string
		in       string
		wantBase string
	}{
		{"simple", "Acme Co", "acme_co"},
		{"whitespace runs", "Acme \t  Widgets\nInc", "acme_widgets_inc"},
		{"punctuation", "O'Reilly & Sons, Ltd.", "oreilly__sons_ltd"},
		{"truncated", "A Very Long Company Name Indeed", "a_very_long_company_"},
		{"non ascii", "Café Zürich", "caf_zrich"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
		{"sql injection", `x"; DROP DATABASE y; --`, "x_drop_database_y_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := g.Generate(tt.in)

			assert.Regexp(t, identifierShape, id)
			assert.True(t, database.ValidStoreName(id), "identifier %q must be usable as a store name", id)
			assert.True(t, strings.HasPrefix(id, "tenant_"+tt.wantBase+"_"), "got %q", id)
		})
	}
}

func TestGenerate_AcmeMatchesExpectedPattern(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^tenant_acme_co_\d+$`), GenerateStoreIdentifier("Acme Co"))
}

func TestGenerate_DistinctWithinSameMillisecond(t *testing.T) {
	frozen := time.UnixMilli(1700000000000)
	g := NewIdentifierGenerator(func() time.Time { return frozen })

	first := g.Generate("Acme Co")
	second := g.Generate("Acme Co")

	assert.Equal(t, "tenant_acme_co_1700000000000", first)
	assert.Equal(t, "tenant_acme_co_1700000000001", second)
}

func TestGenerate_ClockGoingBackwardsStillIncreases(t *testing.T) {
	now := time.UnixMilli(1700000000500)
	g := NewIdentifierGenerator(func() time.Time { return now })

	first := g.Generate("x")
	now = now.Add(-time.Second)
	second := g.Generate("x")

	assert.Equal(t, "tenant_x_1700000000500", first)
	assert.Equal(t, "tenant_x_1700000000501", second)
}

func TestGenerate_ConcurrentCallsAreUnique(t *testing.T) {
	g := NewIdentifierGenerator(time.Now)

	const n = 200
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = g.Generate("Same Name")
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		require.False(t, seen[id], "duplicate identifier %q", id)
		seen[id] = true
	}
}
