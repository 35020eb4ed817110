//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo with the sample TOML config
func (Run) Demo() error {
	fmt.Println("Run demo...")
	_, err := executeCmd("go", withArgs("run", "./cmd/nbatch-demo", "-config", "cmd/nbatch-demo/nbatch.toml"), withStream())
	return err
}

// Runs the demo with the sample YAML config
func (Run) DemoYaml() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/nbatch-demo", "-config", "cmd/nbatch-demo/nbatch.yaml"), withStream())
	return err
}
