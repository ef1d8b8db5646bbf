package ast

// NodeType represents the type of the AST node
type NodeType uint8

// Node types
const (
	NodeTypeInvalid NodeType = iota
	NodeTypeCallExpression
	NodeTypeNumberLiteral
	NodeTypeStringLiteral
)

func (nt NodeType) String() string {
	s, ok := nodeTypeName[nt]
	if ok {
		return s
	}
	return nodeTypeName[NodeTypeInvalid]
}

var nodeTypeName = map[NodeType]string{
	NodeTypeInvalid:        "invalid",
	NodeTypeCallExpression: "call",
	NodeTypeNumberLiteral:  "number",
	NodeTypeStringLiteral:  "string",
}
