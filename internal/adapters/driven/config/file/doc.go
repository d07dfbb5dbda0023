// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML settings file (publishing repository, token,
//     pipeline defaults)
package file
