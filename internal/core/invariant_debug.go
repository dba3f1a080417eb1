//go:build debug

package core

const strictInvariants = true
