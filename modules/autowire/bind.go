package autowire

import (
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// bindValue converts a cty property value into the Go value behind target,
// applying implicit cty conversions where the types allow it.
func bindValue(val cty.Value, target any) error {
	targetPtr := reflect.ValueOf(target)
	if targetPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("bind target must be a pointer, got %T", target)
	}

	impliedType, err := gocty.ImpliedType(targetPtr.Elem().Interface())
	if err != nil {
		// No implied cty type for this Go type; let gocty try directly.
		return gocty.FromCtyValue(val, target)
	}

	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w",
			val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	return gocty.FromCtyValue(converted, target)
}
