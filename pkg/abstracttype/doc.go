// Package abstracttype defines the contract every abstract column type (such as
// duration) implements to expose its column-level display options for editing,
// and a read-only registry keyed by abstract type.
//
// A Configuration supplies an icon token, the generic cell renderer kind, and a
// DisplayConfig factory. The DisplayConfig pairs a form.Schema with two pure
// transforms: ConstructFormValues seeds a form from persisted display options
// (nil meaning the column was never configured) and DetermineDisplayOptions
// turns submitted form values back into the persisted shape. The round trip
// may normalise but must be idempotent; CheckContract verifies this for any
// implementation.
package abstracttype
