package config

// Placeholder keys recognized in Makefile templates.
const (
	KeyCXX      = "CXX"
	KeyCXXFlags = "CXXFLAGS"
	KeyInc      = "INC"
	KeyLDFlags  = "LDFLAGS"
	KeyLibDir   = "LIB_DIR"
	KeyLibs     = "LIBS"
	KeySrc      = "SRC"
	KeyTarget   = "TARGET"
	KeyGTestDir = "GTEST_DIR"
	KeyChecker  = "CHECKER"
	KeyTestSrcs = "TEST_SRCS"
	KeyTestBins = "TEST_BINS"
	KeyTestObjs = "TEST_OBJS"
)

// Documented defaults. GTEST_DIR and CHECKER hold placeholder paths that
// stand in for "not detected".
const (
	DefaultCXX      = "c++"
	DefaultCXXFlags = "-Wall -Wextra -Werror"
	DefaultTarget   = "program"
	DefaultGTestDir = "../../vendor/gtest"
	DefaultChecker  = "/path/to/checker.py"
)

// Keys lists the built-in keys in their canonical order.
var Keys = []string{
	KeyCXX, KeyCXXFlags, KeyInc, KeyLDFlags, KeyLibDir, KeyLibs, KeySrc,
	KeyTarget, KeyGTestDir, KeyChecker, KeyTestSrcs, KeyTestBins, KeyTestObjs,
}

// Values is an insertion-ordered mapping of placeholder keys to their
// string values. The zero value is ready to use.
type Values struct {
	keys []string
	vals map[string]string
}

// NewValues returns an empty mapping.
func NewValues() *Values {
	return &Values{vals: make(map[string]string)}
}

// Defaults returns a fresh mapping holding the default value of every
// built-in key.
func Defaults() *Values {
	v := NewValues()
	v.Set(KeyCXX, DefaultCXX)
	v.Set(KeyCXXFlags, DefaultCXXFlags)
	v.Set(KeyInc, "")
	v.Set(KeyLDFlags, "")
	v.Set(KeyLibDir, "")
	v.Set(KeyLibs, "")
	v.Set(KeySrc, "")
	v.Set(KeyTarget, DefaultTarget)
	v.Set(KeyGTestDir, DefaultGTestDir)
	v.Set(KeyChecker, DefaultChecker)
	v.Set(KeyTestSrcs, "")
	v.Set(KeyTestBins, "")
	v.Set(KeyTestObjs, "")
	return v
}

// Set assigns value to key. A new key is appended after the existing ones;
// an existing key keeps its position.
func (v *Values) Set(key, value string) {
	if v.vals == nil {
		v.vals = make(map[string]string)
	}
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Get returns the value stored for key and whether it is present.
func (v *Values) Get(key string) (string, bool) {
	val, ok := v.vals[key]
	return val, ok
}

// Value returns the value stored for key, or "" when absent.
func (v *Values) Value(key string) string {
	return v.vals[key]
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Len returns the number of keys.
func (v *Values) Len() int {
	return len(v.keys)
}

// Map returns an unordered copy of the mapping.
func (v *Values) Map() map[string]string {
	m := make(map[string]string, len(v.vals))
	for k, val := range v.vals {
		m[k] = val
	}
	return m
}

// Overrides holds values the operator supplied explicitly. Auto-detection
// never replaces a key present here.
type Overrides map[string]string

// Has reports whether key was supplied explicitly.
func (o Overrides) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Merge returns a new Overrides holding lower's entries overlaid with o's.
func (o Overrides) Merge(lower Overrides) Overrides {
	merged := make(Overrides, len(o)+len(lower))
	for k, v := range lower {
		merged[k] = v
	}
	for k, v := range o {
		merged[k] = v
	}
	return merged
}

// ProjectFile is the format-agnostic content of a per-project override file.
type ProjectFile struct {
	// Path is where the file was read from.
	Path string
	// Overrides are built-in keys set by the file.
	Overrides Overrides
	// Vars are extra placeholder keys, in the order they should be rendered.
	Vars *Values
	// Recursive requests recursive source enumeration.
	Recursive bool
}
