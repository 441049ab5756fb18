package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Declaration files
	ManifestInfo      Code = 1000
	ManifestDecode    Code = 1001
	ManifestEmptyName Code = 1002

	// Declarations
	DeclInfo           Code = 3000
	DeclVarArgsMacro   Code = 3001
	DeclUnknownType    Code = 3002
	DeclUnknownGeneric Code = 3003
	DeclGenericArity   Code = 3004
	DeclBadBuiltinKind Code = 3005
	DeclMissingReturn  Code = 3006
	DeclNotAType       Code = 3007
	DeclRedeclaration  Code = 3008

	// IO
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	ManifestInfo:       "Declaration file information",
	ManifestDecode:     "Malformed declaration file",
	ManifestEmptyName:  "Declaration without a name",
	DeclInfo:           "Declaration information",
	DeclVarArgsMacro:   "Varargs are not supported for macros",
	DeclUnknownType:    "Unknown type",
	DeclUnknownGeneric: "Unknown generic",
	DeclGenericArity:   "Wrong number of type arguments",
	DeclBadBuiltinKind: "Unknown builtin kind",
	DeclMissingReturn:  "Callable never returns a value",
	DeclNotAType:       "Name does not denote a type",
	DeclRedeclaration:  "Conflicting type redeclaration",
	IOLoadFileError:    "I/O load file error",
}

// ID renders the code with its phase prefix, e.g. DCL3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("MAN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("DCL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
