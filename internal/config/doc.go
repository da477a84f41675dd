// Package config loads fill jobs from TOML, YAML or JSON files.
//
// The format is picked from the file extension. Unknown keys are ignored and
// unknown enum values fall back to each setting's default, so a job file
// written for a newer release still loads. File paths inside the job (texture
// images, the custom crop shape) may start with "~" and are resolved relative
// to the directory holding the job file.
package config
