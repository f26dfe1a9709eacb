package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a node as a compact s-expression.  It is used to dump parse
// trees and to compare them in tests.
func Format(n Node) string {
	sb := &strings.Builder{}
	formatNode(sb, n)
	return sb.String()
}

func formatNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil:
		sb.WriteString("nil")
	case *IntLit:
		sb.WriteString(strconv.FormatUint(uint64(v.Value), 10))
	case *DoubleLit:
		text := strconv.FormatFloat(v.Value, 'g', -1, 64)
		sb.WriteString(text)
		if !strings.ContainsAny(text, ".eIN") {
			sb.WriteString(".0")
		}
	case *BoolLit:
		sb.WriteString(strconv.FormatBool(v.Value))
	case *Identifier:
		sb.WriteString(v.Name)
	case *UnaryOp:
		fmt.Fprintf(sb, "(%s ", v.Op.Name)
		formatNode(sb, v.Operand)
		sb.WriteByte(')')
	case *BinaryOp:
		fmt.Fprintf(sb, "(%s ", v.Op.Name)
		formatNode(sb, v.Lhs)
		sb.WriteByte(' ')
		formatNode(sb, v.Rhs)
		sb.WriteByte(')')
	case *Call:
		fmt.Fprintf(sb, "(call %s", v.Callee)
		for _, arg := range v.Args {
			sb.WriteByte(' ')
			formatNode(sb, arg)
		}
		sb.WriteByte(')')
	case *Cast:
		fmt.Fprintf(sb, "(cast %s ", v.Target)
		formatNode(sb, v.Src)
		sb.WriteByte(')')

	case *ExprStmt:
		if v.Expr == nil {
			sb.WriteString("(empty)")
		} else {
			formatNode(sb, v.Expr)
		}
	case *Block:
		sb.WriteString("{")
		for _, elem := range v.Elems {
			sb.WriteByte(' ')
			formatNode(sb, elem)
		}
		sb.WriteString(" }")
	case *IfStmt:
		sb.WriteString("(if ")
		formatNode(sb, v.Cond)
		sb.WriteByte(' ')
		formatNode(sb, v.Then)
		if v.Else != nil {
			sb.WriteByte(' ')
			formatNode(sb, v.Else)
		}
		sb.WriteByte(')')
	case *ForStmt:
		sb.WriteString("(for ")
		if v.VarType.IsValid() {
			fmt.Fprintf(sb, "(%s %s ", v.VarType, v.VarName)
			formatOptional(sb, v.Start)
			sb.WriteString(") ")
		} else {
			sb.WriteString("_ ")
		}
		formatOptional(sb, v.End)
		sb.WriteByte(' ')
		formatOptional(sb, v.Step)
		sb.WriteByte(' ')
		formatNode(sb, v.Body)
		sb.WriteByte(')')
	case *SwitchStmt:
		sb.WriteString("(switch ")
		formatNode(sb, v.Scrutinee)
		for _, clause := range v.Clauses {
			sb.WriteString(" (case")
			for _, label := range clause.Labels {
				sb.WriteByte(' ')
				if label == nil {
					sb.WriteString("default")
				} else {
					formatNode(sb, label)
				}
			}
			sb.WriteString(" :")
			for _, stmt := range clause.Body {
				sb.WriteByte(' ')
				formatNode(sb, stmt)
			}
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case *WhileStmt:
		sb.WriteString("(while ")
		formatNode(sb, v.Cond)
		sb.WriteByte(' ')
		formatNode(sb, v.Body)
		sb.WriteByte(')')
	case *DoWhileStmt:
		sb.WriteString("(do ")
		formatNode(sb, v.Body)
		sb.WriteByte(' ')
		formatNode(sb, v.Cond)
		sb.WriteByte(')')
	case *RepeatUntilStmt:
		sb.WriteString("(repeat ")
		formatNode(sb, v.Body)
		sb.WriteByte(' ')
		formatNode(sb, v.Cond)
		sb.WriteByte(')')
	case *ReadStmt:
		sb.WriteString("(read ")
		formatNode(sb, v.Target)
		sb.WriteByte(')')
	case *WriteStmt:
		sb.WriteString("(write ")
		formatNode(sb, v.Value)
		sb.WriteByte(')')
	case *ContinueStmt:
		sb.WriteString("(continue)")
	case *BreakStmt:
		sb.WriteString("(break)")
	case *ReturnStmt:
		sb.WriteString("(return ")
		formatNode(sb, v.Value)
		sb.WriteByte(')')
	case *ExitStmt:
		sb.WriteString("(exit ")
		formatNode(sb, v.Code)
		sb.WriteByte(')')

	case *VarDecl:
		formatVarDecl(sb, "var", v)
	case *GlobalVarDecl:
		formatVarDecl(sb, "global", v.VarDecl)
	case *Prototype:
		formatProto(sb, "proto", v)
		sb.WriteByte(')')
	case *FuncDef:
		formatProto(sb, "func", v.Proto)
		sb.WriteByte(' ')
		formatNode(sb, v.Body)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%T>", n)
	}
}

// formatOptional formats an optional expression as `_` when it is absent.
func formatOptional(sb *strings.Builder, e Expr) {
	if e == nil {
		sb.WriteByte('_')
	} else {
		formatNode(sb, e)
	}
}

func formatVarDecl(sb *strings.Builder, tag string, vd *VarDecl) {
	sb.WriteByte('(')
	sb.WriteString(tag)
	if vd.Const {
		sb.WriteString(" const")
	}
	fmt.Fprintf(sb, " %s %s", vd.Type, vd.VarName)
	if vd.Init != nil {
		sb.WriteByte(' ')
		formatNode(sb, vd.Init)
	}
	sb.WriteByte(')')
}

// formatProto writes the head of a prototype without the closing paren.
func formatProto(sb *strings.Builder, tag string, proto *Prototype) {
	fmt.Fprintf(sb, "(%s %s %s (", tag, proto.ReturnType, proto.FuncName)
	for i, param := range proto.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if param.Const {
			sb.WriteString("const ")
		}
		fmt.Fprintf(sb, "%s %s", param.Type, param.VarName)
	}
	sb.WriteByte(')')
}
