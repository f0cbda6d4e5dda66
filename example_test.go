package thegrep_test

import (
	"errors"
	"fmt"

	"github.com/coregx/thegrep"
	"github.com/coregx/thegrep/syntax"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := thegrep.Compile("ab*c")
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Accepts("abbbc"))
	fmt.Println(re.Accepts("abbbb"))
	// Output:
	// true
	// false
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := thegrep.MustCompile("(a|bc)*")
	fmt.Println(re.Accepts("bcbc"), re.Accepts(""), re.Accepts("bcx"))
	// Output: true true false
}

// ExampleCompileWithConfig demonstrates grep-like search.
func ExampleCompileWithConfig() {
	config := thegrep.DefaultConfig()
	config.Mode = thegrep.Search

	re, err := thegrep.CompileWithConfig("amin", config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.MatchString("flamingo"))
	// Output: true
}

// ExampleCompile_error shows the position carried by parse errors.
func ExampleCompile_error() {
	_, err := thegrep.Compile("a|)")

	var perr *syntax.Error
	if errors.As(err, &perr) {
		fmt.Println(perr.Position().Column, perr.Message())
	}
	// Output: 3 unexpected token: RightParen
}
