package common

// ToyVersion is the current version of the compiler.
const ToyVersion = "0.1.0"

// ConfigFileName is the name of the optional build configuration file looked
// up next to the source file being compiled.
const ConfigFileName = "toy.toml"

// SrcFileExtension is the expected file extension for toy source files.
const SrcFileExtension = ".toy"
