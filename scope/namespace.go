package scope

// Namespace is one of the two disjoint name spaces a module maintains.
// A class or enum declaration inhabits Both simultaneously;
// every other declaration inhabits exactly one of Value or Type.
type Namespace int

const (
	// Value is the namespace of runtime bindings: const/let/var, functions,
	// parameters, import aliases that bind a value.
	Value Namespace = iota
	// Type is the namespace of type-level bindings: type aliases,
	// interfaces, type parameters.
	Type
	// Both marks a class or enum binding, which occupies the Value and Type
	// namespace slots of its scope simultaneously and shares one ref_count.
	Both
)

func (n Namespace) String() string {
	switch n {
	case Value:
		return "value"
	case Type:
		return "type"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// RefNamespace is the namespace a reference targets; RefAmbiguous marks a
// reference whose namespace could not be determined syntactically, such as
// an export specifier name. It is distinct from Namespace because a Reference, unlike a Binding, can
// legitimately target either namespace without committing to one.
type RefNamespace int

const (
	RefValue RefNamespace = iota
	RefType
	RefAmbiguous
)
