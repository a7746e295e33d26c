package engine

// FieldKey identifies one fee field for override tracking.
type FieldKey string

const (
	FieldReferral    FieldKey = "referral_fee"
	FieldFulfillment FieldKey = "fulfillment_fee"
	FieldInbound     FieldKey = "inbound_shipping_fee"
	FieldStorage     FieldKey = "storage_fee"
	FieldPrep        FieldKey = "prep_fee"
	FieldAdditional  FieldKey = "additional_fees"
)

// AllFields lists every trackable fee field.
func AllFields() []FieldKey {
	return []FieldKey{
		FieldReferral, FieldFulfillment, FieldInbound,
		FieldStorage, FieldPrep, FieldAdditional,
	}
}

// ParseFieldKey validates a raw field name.
func ParseFieldKey(s string) (FieldKey, bool) {
	for _, k := range AllFields() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// FieldGroup resolves a logical reset scope to its member fields.
// Known groups: "shipping" (inbound + fulfillment), "handling"
// (prep + additional), "all".
func FieldGroup(name string) []FieldKey {
	switch name {
	case "shipping":
		return []FieldKey{FieldInbound, FieldFulfillment}
	case "handling":
		return []FieldKey{FieldPrep, FieldAdditional}
	case "all":
		return AllFields()
	}
	return nil
}

// FieldState is the externally visible state of one fee field.
type FieldState struct {
	Overridden bool    `json:"overridden"`
	Value      float64 `json:"value,omitempty"`
}

// FieldStateSet tracks, per fee field, whether the value is auto-derived or
// frozen at a user-entered override. Fields start Derived; a user edit moves
// a field to Overridden; only an explicit reset moves it back. The engine
// skips recomputation for overridden fields and feeds the stored value to
// the aggregator instead.
type FieldStateSet struct {
	overrides map[FieldKey]float64
}

// NewFieldStateSet returns a set with every field Derived.
func NewFieldStateSet() *FieldStateSet {
	return &FieldStateSet{overrides: make(map[FieldKey]float64)}
}

// Override freezes a field at a user-entered value (Derived → Overridden).
// Re-overriding an already overridden field just replaces the value.
func (s *FieldStateSet) Override(key FieldKey, value float64) {
	if s.overrides == nil {
		s.overrides = make(map[FieldKey]float64)
	}
	s.overrides[key] = value
}

// Reset returns one field to Derived.
func (s *FieldStateSet) Reset(key FieldKey) {
	delete(s.overrides, key)
}

// ResetGroup returns every field in a logical group to Derived.
func (s *FieldStateSet) ResetGroup(name string) {
	for _, k := range FieldGroup(name) {
		delete(s.overrides, k)
	}
}

// ResetAll returns every field to Derived.
func (s *FieldStateSet) ResetAll() {
	s.overrides = make(map[FieldKey]float64)
}

// IsOverridden reports whether a field is frozen. A nil set means all
// fields are Derived.
func (s *FieldStateSet) IsOverridden(key FieldKey) bool {
	if s == nil {
		return false
	}
	_, ok := s.overrides[key]
	return ok
}

// OverrideValue returns the stored override for a field, if any.
func (s *FieldStateSet) OverrideValue(key FieldKey) (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, ok := s.overrides[key]
	return v, ok
}

// States snapshots every field's state, for persistence and for the UI.
func (s *FieldStateSet) States() map[FieldKey]FieldState {
	out := make(map[FieldKey]FieldState, len(AllFields()))
	for _, k := range AllFields() {
		if v, ok := s.OverrideValue(k); ok {
			out[k] = FieldState{Overridden: true, Value: v}
		} else {
			out[k] = FieldState{}
		}
	}
	return out
}

// RestoreFieldStates rebuilds a set from persisted override values.
func RestoreFieldStates(overrides map[FieldKey]float64) *FieldStateSet {
	s := NewFieldStateSet()
	for k, v := range overrides {
		s.Override(k, v)
	}
	return s
}
