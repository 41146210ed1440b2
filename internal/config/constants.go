package config

// IsTestMode indicates if the program is running under tests.
// Rendering of declaration identities is normalized when it is set.
var IsTestMode = false

// Built-in type names
const (
	TopTypeName     = "java.lang.Object"
	LangPackage     = "java.lang."
	VoidKeyword     = "void"
	ExtendsKeyword  = "extends"
	SuperKeyword    = "super"
	WildcardSymbol  = "?"
	ArraySuffix     = "[]"
	WildcardImport  = ".*"
	PackageSep      = "."
	BoundSeparator  = " & "
	ArgSeparator    = ", "
	ClassKindName   = "class"
	IfaceKindName   = "interface"
	DefaultUniverse = "jdk"
)

// DefaultImportPrefixes are the package prefixes every parser searches:
// fully qualified names and java.lang.
var DefaultImportPrefixes = []string{"", LangPackage}

// DefaultMaxParseDepth bounds the nesting of type arguments in one type string.
const DefaultMaxParseDepth = 64

// Tool configuration lookup
const (
	ConfigEnvVar       = "TYPEREL_CONFIG"
	ConfigFileName     = "typerel.yaml"
	ConfigFileNameAlt  = "typerel.yml"
	CatalogDriverName  = "sqlite"
	DefaultCatalogFile = "typerel.db"
)
