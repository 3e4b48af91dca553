// Package dataset reads the fixed annotation inputs: the dialogue dataset
// (JSON) and the cognitive-appraisal schema (YAML). Both are re-read on every
// call; nothing is cached.
package dataset
