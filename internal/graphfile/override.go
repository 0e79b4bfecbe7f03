package graphfile

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/matzehuels/stackflow/pkg/errors"
)

// ParseValue reads a command-line value as an HCL literal, so 3 is a
// number, true a bool and [1, 2] a tuple. Anything that is not a
// self-contained literal (bare words, references) is taken as a string.
func ParseValue(s string) cty.Value {
	expr, diags := hclsyntax.ParseExpression([]byte(s), "value", hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() || len(expr.Variables()) > 0 {
		return cty.StringVal(s)
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() || !v.IsWhollyKnown() {
		return cty.StringVal(s)
	}
	return v
}

// ParseOverride splits "node.port=value" into its reference and value.
func ParseOverride(arg string) (string, cty.Value, error) {
	ref, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return "", cty.NilVal, errors.New(errors.ErrCodeInvalidInput, "override %q: want node.port=value", arg)
	}
	ref = strings.TrimSpace(ref)
	if _, _, err := errors.SplitPortRef(ref); err != nil {
		return "", cty.NilVal, err
	}
	return ref, ParseValue(raw), nil
}
