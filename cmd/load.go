package cmd

import (
	"fmt"
	"os"

	"github.com/masnyjimmy/asyncdocket/compilation"
	"github.com/masnyjimmy/asyncdocket/docket"
	"github.com/masnyjimmy/asyncdocket/validation"
)

// Exit codes per failing stage.
const (
	exitRead     = 1
	exitValidate = 2
	exitParse    = 3
	exitCompile  = 4
	exitWrite    = 5
	exitConfig   = 6
)

type exitError struct {
	code int
	err  error
}

func exitWith(code int, err error) error {
	return &exitError{code: code, err: err}
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

/*
Stages of loading a docket file:
1. read bytes
2. validate against the docket schema
3. decode and build the docket
4. compile and check the document
*/
func readDocket(filename string) (*docket.Docket, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, exitWith(exitRead, fmt.Errorf("unable to read file %q: %w", filename, err))
	}

	if err := validation.ValidateDocket(bytes); err != nil {
		return nil, exitWith(exitValidate, fmt.Errorf("validation failed: %w", err))
	}

	d, err := docket.Parse(bytes)
	if err != nil {
		return nil, exitWith(exitParse, err)
	}

	return d, nil
}

func compileDocket(d *docket.Docket) (*compilation.Document, error) {
	doc, err := compilation.Compile(d)
	if err != nil {
		return nil, exitWith(exitCompile, fmt.Errorf("compilation failed: %w", err))
	}

	jsonBytes, err := compilation.MarshalJSON(doc)
	if err != nil {
		return nil, exitWith(exitCompile, err)
	}

	if err := validation.ValidateDocument(jsonBytes); err != nil {
		return nil, exitWith(exitCompile, fmt.Errorf("generated document is invalid: %w", err))
	}

	return doc, nil
}

func loadDocument(filename string) (*compilation.Document, error) {
	d, err := readDocket(filename)
	if err != nil {
		return nil, err
	}
	return compileDocket(d)
}
