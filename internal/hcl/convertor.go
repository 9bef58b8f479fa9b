package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/genmake/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Converter flattens cty values into template strings.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// ToString renders val as a single string. Strings are used as they are,
// numbers and bools are converted, and lists, tuples and sets of those are
// joined with single spaces. Null elements are skipped.
func (c *Converter) ToString(ctx context.Context, val cty.Value) (string, error) {
	logger := ctxlog.FromContext(ctx)

	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}

	ty := val.Type()
	if ty.IsPrimitiveType() {
		return c.primitive(val)
	}

	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return "", fmt.Errorf("unsupported value of type %s, want a string or a list of strings", ty.FriendlyName())
	}

	parts := make([]string, 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			continue
		}
		if !elem.Type().IsPrimitiveType() {
			return "", fmt.Errorf("unsupported element of type %s in %s", elem.Type().FriendlyName(), ty.FriendlyName())
		}
		s, err := c.primitive(elem)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}

	logger.Debug("Joined collection value.", "type", ty.FriendlyName(), "elements", len(parts))
	return strings.Join(parts, " "), nil
}

func (c *Converter) primitive(val cty.Value) (string, error) {
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	return converted.AsString(), nil
}
