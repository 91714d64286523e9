// Package horn is the Horn/SMT backend the encoder in package chc talks
// to: relations (uninterpreted predicates), rules (implications between
// them), and reachability queries. It plays the role spec.md ss6
// assigns to "the SMT/Horn backend... consumed through a fixed
// interface" -- package chc is written against the Backend interface
// only, never against a concrete implementation.
package horn

import (
	"fmt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Sort is a first-order theory sort: int, bool, or an array (mapping)
// from one sort to another. Mirrors ast.Sort one level down, in the
// solver's own type vocabulary.
type Sort interface {
	sort()
	String() string
	yicesType() yices2.TypeT
}

type boolSort struct{}

func (boolSort) sort()                    {}
func (boolSort) String() string           { return "bool" }
func (boolSort) yicesType() yices2.TypeT  { return yices2.BoolType() }

type intSort struct{}

func (intSort) sort()                   {}
func (intSort) String() string          { return "int" }
func (intSort) yicesType() yices2.TypeT { return yices2.IntType() }

type arraySort struct {
	key   Sort
	value Sort
}

func (arraySort) sort() {}
func (a arraySort) String() string {
	return fmt.Sprintf("(array %s %s)", a.key.String(), a.value.String())
}
func (a arraySort) yicesType() yices2.TypeT {
	return yices2.FunctionType1(a.key.yicesType(), a.value.yicesType())
}

var (
	SortBool Sort = boolSort{}
	SortInt  Sort = intSort{}
)

// SortArray builds the sort of a mapping from key to value, modelled
// as an uninterpreted function key -> value the way yices2 (which has
// no native array theory) represents maps -- the same technique
// _examples/Notation-gscanner/internal/smt/array.go uses for EVM
// storage, one level of abstraction up (int keys/values instead of
// fixed-width bitvectors).
func SortArray(key, value Sort) Sort {
	return arraySort{key: key, value: value}
}
