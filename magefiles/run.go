//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed in a window with the default configuration.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed in an Ebiten window.
func (Run) Ebiten() error {
	fmt.Println("Run engine with ebiten...")
	if _, err := executeCmd("go", withArgs("run", "-tags", "ebiten", ".", "-config", "assets/config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the testbed without a window and writes frame snapshots.
func (Run) Headless() error {
	fmt.Println("Run headless...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "assets/headless.yaml"), withStream()); err != nil {
		return err
	}
	return nil
}
