package manifest

// On-disk shape of a declaration file.

// Top-level entries are declared in the global scope, visible from every
// module. Constants and specializations only exist inside modules.
type rawFile struct {
	Type        []rawType        `toml:"type"`
	Alias       []rawAlias       `toml:"alias"`
	ExternConst []rawExternConst `toml:"extern_const"`
	Macro       []rawCallable    `toml:"macro"`
	Builtin     []rawCallable    `toml:"builtin"`
	Runtime     []rawCallable    `toml:"runtime"`
	Generic     []rawGeneric     `toml:"generic"`
	Module      []rawModule      `toml:"module"`
}

func (f *rawFile) global() *rawModule {
	return &rawModule{
		Type:        f.Type,
		Alias:       f.Alias,
		ExternConst: f.ExternConst,
		Macro:       f.Macro,
		Builtin:     f.Builtin,
		Runtime:     f.Runtime,
		Generic:     f.Generic,
	}
}

type rawModule struct {
	Name        string           `toml:"name"`
	Type        []rawType        `toml:"type"`
	Alias       []rawAlias       `toml:"alias"`
	Const       []rawConst       `toml:"const"`
	ExternConst []rawExternConst `toml:"extern_const"`
	Macro       []rawCallable    `toml:"macro"`
	Builtin     []rawCallable    `toml:"builtin"`
	Runtime     []rawCallable    `toml:"runtime"`
	Generic     []rawGeneric     `toml:"generic"`
	Specialize  []rawSpecialize  `toml:"specialize"`
}

type rawType struct {
	Name    string `toml:"name"`
	Extends string `toml:"extends"`
}

type rawAlias struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type rawConst struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
	Expr string `toml:"expr"`
}

type rawExternConst struct {
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Value string `toml:"value"`
}

type rawParam struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type rawLabel struct {
	Name  string   `toml:"name"`
	Types []string `toml:"types"`
}

type rawCallable struct {
	Name          string     `toml:"name"`
	Kind          string     `toml:"kind"`
	Params        []rawParam `toml:"params"`
	VarArgs       bool       `toml:"varargs"`
	Returns       string     `toml:"returns"`
	Labels        []rawLabel `toml:"labels"`
	Transitioning bool       `toml:"transitioning"`
	Body          *string    `toml:"body"`
}

type rawGeneric struct {
	Name          string     `toml:"name"`
	TypeParams    []string   `toml:"type_params"`
	Kind          string     `toml:"kind"`
	BuiltinKind   string     `toml:"builtin_kind"`
	Params        []rawParam `toml:"params"`
	VarArgs       bool       `toml:"varargs"`
	Returns       string     `toml:"returns"`
	Labels        []rawLabel `toml:"labels"`
	Transitioning bool       `toml:"transitioning"`
	Body          *string    `toml:"body"`
}

type rawSpecialize struct {
	Generic string   `toml:"generic"`
	Args    []string `toml:"args"`
}
