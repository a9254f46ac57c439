package deflist_test

import (
	"context"
	"testing"

	"github.com/yaklabco/gomdtok/pkg/block"
	"github.com/yaklabco/gomdtok/pkg/deflist"
	"github.com/yaklabco/gomdtok/pkg/mdast"
)

// FuzzParse checks that any input yields a balanced stream.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Term\n: Definition",
		"Term\n~ One\n~ Two",
		"Term\n: One\n\n  more text",
		"Term\n\n: Definition\n\nOther\n: Again",
		"Term\n: Outer\n\n  Inner\n  : Nested\n",
		"Term\n:\tTabbed\n\tcontinued",
		"Term\n: ```\n  code\n  ```",
		": orphan\n:",
		"# Title\n\n---\n\n    code\n",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	p, err := block.New(block.WithExtensions(deflist.Extension))
	if err != nil {
		f.Fatal(err)
	}

	f.Fuzz(func(t *testing.T, src string) {
		stream, err := p.Parse(context.Background(), src, nil)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if err := mdast.Validate(stream); err != nil {
			t.Errorf("unbalanced stream for %q: %v", src, err)
		}
	})
}
