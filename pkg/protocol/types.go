package protocol

// coreVersion is set at build time via -ldflags "-X ...coreVersion=vX.Y.Z";
// it defaults to "dev" for local builds and tests.
var coreVersion = "dev"

// GetCoreVersion returns the version of aliasvault-core. Hosts embedding the
// library may refuse to load an incompatible core.
func GetCoreVersion() string {
	return coreVersion
}

// Record is a single schema-flexible row from a syncable table: a mapping
// from column name to a tagged-variant JSON value (null, bool, number,
// string, array, or object). Records are immutable within a call; nothing
// about their shape is known ahead of time beyond the presence of "Id" and
// "UpdatedAt" used by vault merge and the pruner.
type Record map[string]any

// StringField reads a string-valued column, returning "" and false if the
// column is absent or not a string.
func (r Record) StringField(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// BoolField reads a bool-valued column. SQLite commonly round-trips
// booleans as 0/1 floats through JSON, so numeric values are coerced too.
func (r Record) BoolField(name string) (bool, bool) {
	v, ok := r[name]
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	}
	return false, false
}
