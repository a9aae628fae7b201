package config

// NamespaceSeparator separates the segments of a namespaced class or
// interface name, both as written in source and in canonical FQNs.
const NamespaceSeparator = "\\"

const IRFileExt = ".zir"

// IRFileExtensions are all recognized frontend IR file extensions
var IRFileExtensions = []string{".zir", ".zir.json"}

// ConfigFileNames are the project configuration files, checked in order.
var ConfigFileNames = []string{"zeta.yaml", "zeta.yml"}

// BuildDirName is the per-project working directory kept by the driver.
const BuildDirName = ".zeta"

// CacheFileName is the unit cache database inside the build directory.
const CacheFileName = "cache.db"

// Runtime symbols emitted for the generic (non-specialized) call paths
const (
	CallFunctionSymbol = "zeta_call_function"
	StaticCallSymbol   = "zeta_static_call"
	NewInstanceSymbol  = "zeta_new_instance"
	NullValueSymbol    = "ZETA_NULL"
)

// Runtime constructors boxing native C values into runtime values
const (
	ValueFromLongSymbol   = "zeta_value_long"
	ValueFromDoubleSymbol = "zeta_value_double"
	ValueFromBoolSymbol   = "zeta_value_bool"
	ValueFromStringSymbol = "zeta_value_string"
)

// RuntimeHeader is included at the top of every emitted unit.
const RuntimeHeader = "zeta/runtime.h"

// FunctionSymbolPrefix prefixes every emitted C function symbol.
const FunctionSymbolPrefix = "zf"
