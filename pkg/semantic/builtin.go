package semantic

import "strings"

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	typeObject  = Type{Name: "Object", Category: CategoryClass, Special: SpecialObject}
	typeBoolean = Type{Name: "Boolean", Category: CategoryStruct, Special: SpecialBoolean}
	typeString  = Type{Name: "String", Category: CategoryClass, Special: SpecialString}
	typeInt32   = Type{Name: "Int32", Category: CategoryStruct, Special: SpecialInt32}
	typeEnum    = Type{Name: "Enum", Category: CategoryClass, Special: SpecialEnum}
	typeType    = Type{Name: "Type", Category: CategoryClass}
	typeArray   = Type{Name: "Array", Category: CategoryClass}

	// predefinedTypes maps C# keywords to their runtime types.
	predefinedTypes = map[string]Type{
		"object":  typeObject,
		"bool":    typeBoolean,
		"string":  typeString,
		"int":     typeInt32,
		"uint":    {Name: "UInt32", Category: CategoryStruct},
		"long":    {Name: "Int64", Category: CategoryStruct},
		"ulong":   {Name: "UInt64", Category: CategoryStruct},
		"short":   {Name: "Int16", Category: CategoryStruct},
		"ushort":  {Name: "UInt16", Category: CategoryStruct},
		"byte":    {Name: "Byte", Category: CategoryStruct},
		"sbyte":   {Name: "SByte", Category: CategoryStruct},
		"char":    {Name: "Char", Category: CategoryStruct},
		"float":   {Name: "Single", Category: CategoryStruct},
		"double":  {Name: "Double", Category: CategoryStruct},
		"decimal": {Name: "Decimal", Category: CategoryStruct},
		"nint":    {Name: "IntPtr", Category: CategoryStruct},
		"nuint":   {Name: "UIntPtr", Category: CategoryStruct},
	}

	// frameworkTypes are runtime types referenced by their type names.
	frameworkTypes = map[string]Type{
		"Object":   typeObject,
		"Boolean":  typeBoolean,
		"String":   typeString,
		"Int32":    typeInt32,
		"Int64":    {Name: "Int64", Category: CategoryStruct},
		"Double":   {Name: "Double", Category: CategoryStruct},
		"Decimal":  {Name: "Decimal", Category: CategoryStruct},
		"Char":     {Name: "Char", Category: CategoryStruct},
		"DateTime": {Name: "DateTime", Category: CategoryStruct},
		"TimeSpan": {Name: "TimeSpan", Category: CategoryStruct},
		"Guid":     {Name: "Guid", Category: CategoryStruct},
		"Enum":     typeEnum,
		"Type":     typeType,
		"Console":  {Name: "Console", Category: CategoryClass},
		"Math":     {Name: "Math", Category: CategoryClass},
	}

	// WellKnownEnums lists framework enumerations recognised without a declaration.
	WellKnownEnums = []string{
		"AttributeTargets",
		"Base64FormattingOptions",
		"BindingFlags",
		"CompareOptions",
		"ConsoleColor",
		"ConsoleKey",
		"DateTimeKind",
		"DateTimeStyles",
		"DayOfWeek",
		"DecompressionMethods",
		"EnvironmentVariableTarget",
		"FileAccess",
		"FileAttributes",
		"FileMode",
		"FileOptions",
		"FileShare",
		"GCCollectionMode",
		"HttpStatusCode",
		"LogLevel",
		"MidpointRounding",
		"NumberStyles",
		"PlatformID",
		"RegexOptions",
		"SearchOption",
		"SeekOrigin",
		"StringComparison",
		"StringSplitOptions",
		"TaskCreationOptions",
		"TaskStatus",
		"ThreadPriority",
		"ThreadState",
		"TypeCode",
		"UriKind",
		"UriPartial",
	}
)

// simpleName strips namespace qualification and generic arity from a type name.
func simpleName(name string) string {
	name = strings.TrimPrefix(name, "global::")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '<'); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

func nullableOf(t Type) Type {
	if t.IsNullable() {
		return t
	}
	return Type{Name: t.Name + "?", Category: CategoryStruct}
}

// objectMethod resolves the members every type inherits from System.Object
// (and, for enums, from System.Enum).
func objectMethod(recv Type, name string, arity int) (Signature, bool) {
	switch {
	case name == "Equals" && arity == 1:
		return Signature{Name: name, Params: []Type{typeObject}, Return: typeBoolean}, true
	case name == "GetHashCode" && arity == 0:
		return Signature{Name: name, Return: typeInt32}, true
	case name == "ToString" && arity == 0:
		return Signature{Name: name, Return: typeString}, true
	case name == "GetType" && arity == 0:
		return Signature{Name: name, Return: typeType}, true
	}

	if recv.IsEnum() {
		switch {
		case name == "HasFlag" && arity == 1:
			return Signature{Name: name, Params: []Type{typeEnum}, Return: typeBoolean}, true
		case name == "CompareTo" && arity == 1:
			return Signature{Name: name, Params: []Type{typeObject}, Return: typeInt32}, true
		case name == "ToString" && arity == 1:
			return Signature{Name: name, Params: []Type{typeString}, Return: typeString}, true
		}
	}

	return Signature{}, false
}

// stringMethod resolves the String members that shadow or overload Object's.
// args holds the statically known argument types.
func stringMethod(name string, args []argType) (Signature, bool) {
	switch {
	case name == "Equals" && len(args) == 1:
		if !args[0].ok {
			return Signature{}, false
		}
		if args[0].t.Special == SpecialString {
			return Signature{Name: name, Params: []Type{typeString}, Return: typeBoolean}, true
		}
		return Signature{Name: name, Params: []Type{typeObject}, Return: typeBoolean}, true
	case name == "Equals" && len(args) == 2:
		comparison := Type{Name: "StringComparison", Category: CategoryEnum}
		return Signature{Name: name, Params: []Type{typeString, comparison}, Return: typeBoolean}, true
	case (name == "Contains" || name == "StartsWith" || name == "EndsWith") && len(args) >= 1:
		params := make([]Type, len(args))
		for i := range params {
			params[i] = typeString
		}
		return Signature{Name: name, Params: params, Return: typeBoolean}, true
	case (name == "ToUpper" || name == "ToLower" || name == "Trim") && len(args) == 0:
		return Signature{Name: name, Return: typeString}, true
	}
	return Signature{}, false
}

// staticObjectMethod resolves object.Equals(a, b) and object.ReferenceEquals(a, b),
// which every type exposes through its type name.
func staticObjectMethod(name string, arity int) (Signature, bool) {
	if (name == "Equals" || name == "ReferenceEquals") && arity == 2 {
		return Signature{Name: name, Params: []Type{typeObject, typeObject}, Return: typeBoolean, Static: true}, true
	}
	return Signature{}, false
}
