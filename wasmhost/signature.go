package wasmhost

import (
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
)

// maxFlatParams is the canonical ABI limit before params spill to memory.
const maxFlatParams = 16

// Host module and function names.
const (
	FuncLoad   = "load_image_from_memory"
	FuncCopy   = "image_copy"
	FuncFree   = "free_image"
	ModuleName = "image"
)

// Signature describes a host function in interface types.
type Signature struct {
	Name    string
	Params  []wit.Type
	Results []wit.Type
}

var (
	bytesType = &wit.TypeDef{Kind: &wit.List{Type: wit.U8{}}}
	ownImage  = &wit.TypeDef{Kind: &wit.Own{}}
	borrowImg = &wit.TypeDef{Kind: &wit.Borrow{}}
)

// Signatures lists the host functions.
func Signatures() []Signature {
	return []Signature{
		{
			Name:    FuncLoad,
			Params:  []wit.Type{bytesType, wit.U32{}, wit.U32{}, wit.U32{}},
			Results: []wit.Type{ownImage},
		},
		{
			Name:    FuncCopy,
			Params:  []wit.Type{borrowImg, wit.U32{}, wit.U32{}},
			Results: []wit.Type{wit.U32{}},
		},
		{
			Name:   FuncFree,
			Params: []wit.Type{ownImage},
		},
	}
}

// Flat returns the core value types for s.
func (s Signature) Flat() (params, results []api.ValueType) {
	params = flattenTypes(s.Params)
	results = flattenTypes(s.Results)
	if len(params) > maxFlatParams {
		params = []api.ValueType{api.ValueTypeI32}
	}
	return params, results
}

func flattenTypes(types []wit.Type) []api.ValueType {
	var out []api.ValueType
	for _, t := range types {
		out = append(out, flattenType(t)...)
	}
	return out
}

func flattenType(t wit.Type) []api.ValueType {
	switch v := t.(type) {
	case nil:
		return nil
	case wit.Bool, wit.U8, wit.U16, wit.U32, wit.S8, wit.S16, wit.S32, wit.Char:
		return []api.ValueType{api.ValueTypeI32}
	case wit.U64, wit.S64:
		return []api.ValueType{api.ValueTypeI64}
	case wit.F32:
		return []api.ValueType{api.ValueTypeF32}
	case wit.F64:
		return []api.ValueType{api.ValueTypeF64}
	case wit.String:
		return []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}
	case *wit.TypeDef:
		if v == nil || v.Kind == nil {
			return []api.ValueType{api.ValueTypeI32}
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			return []api.ValueType{api.ValueTypeI32, api.ValueTypeI32} // ptr, len
		case *wit.Own, *wit.Borrow:
			return []api.ValueType{api.ValueTypeI32}
		case *wit.Tuple:
			return flattenTypes(k.Types)
		case *wit.Record:
			var out []api.ValueType
			for _, f := range k.Fields {
				out = append(out, flattenType(f.Type)...)
			}
			return out
		case wit.Type:
			return flattenType(k)
		}
	}
	return []api.ValueType{api.ValueTypeI32}
}
