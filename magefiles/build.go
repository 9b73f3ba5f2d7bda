//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tidies the module and builds the anima binary into bin/.
func (Build) Binary() error {
	if err := goTidy(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/anima", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds bin/anima-ebiten with the Ebiten window backend instead of GLFW.
func (Build) Ebiten() error {
	if err := goTidy(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-tags", "ebiten", "-o", "bin/anima-ebiten", "."), withStream()); err != nil {
		return err
	}
	return nil
}
