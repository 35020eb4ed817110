//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

// corePkgs don't need cgo, so they can be tested and vetted without SDL2 or OpenGL installed
var corePkgs = []string{
	"./assert/...",
	"./buffers/...",
	"./camera/...",
	"./colors/...",
	"./config/...",
	"./logging/...",
	"./materials/...",
	"./meshes",
	"./shaders/...",
	"./timing/...",
	"./renderer",
}

type Build mg.Namespace

// Builds the demo binary into bin/
func (Build) Demo() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/nbatch-demo", "./cmd/nbatch-demo"), withStream())
	return err
}

// Runs go mod tidy
func (Build) Tidy() error {
	_, err := executeCmd("go", withArgs("mod", "tidy"), withStream())
	return err
}

type Test mg.Namespace

// Runs the tests of the packages that don't need cgo
func (Test) Core() error {
	_, err := executeCmd("go", withArgs(append([]string{"test", "-count=1"}, corePkgs...)...), withEnv("CGO_ENABLED=0"), withStream())
	return err
}

// Runs all tests, which needs SDL2 and OpenGL headers
func (Test) All() error {
	mg.Deps(Test.Core)
	_, err := executeCmd("go", withArgs("test", "-count=1", "./..."), withStream())
	return err
}

// Runs go vet on all packages
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
