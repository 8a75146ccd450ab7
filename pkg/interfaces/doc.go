// Package interfaces declares the contracts between application services,
// the pipeline functions they run and the SDK runtime.
package interfaces
